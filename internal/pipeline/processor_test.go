package pipeline

import (
	"context"
	"reflect"
	"strings"
	"sync"
	"testing"
)

const sampleProposal = `Website Redesign Proposal
Prepared for: Acme Corp

Project Overview
Brief overview of the proposed project...

Objectives
- Increase conversion
- Reduce load times

Pricing Summary
ROLE  DESCRIPTION  HOURS  RATE  TOTAL
Engineer  Build thing  10  $100  $1,000`

func TestProcess(t *testing.T) {
	t.Parallel()

	p := NewProcessor()

	t.Run("full run produces a structured document", func(t *testing.T) {
		t.Parallel()

		doc, err := p.Process(context.Background(), sampleProposal, PlaceholderValues{Overview: "Foo"})
		if err != nil {
			t.Fatalf("Process: %v", err)
		}

		if doc.Metadata.Title != "Website Redesign Proposal" {
			t.Errorf("Title = %q", doc.Metadata.Title)
		}
		if doc.Metadata.Client != "Acme Corp" {
			t.Errorf("Client = %q", doc.Metadata.Client)
		}
		if len(doc.Sections) == 0 {
			t.Fatal("no sections")
		}
		if len(doc.TOC) != len(doc.Sections) {
			t.Errorf("len(TOC) = %d, want %d", len(doc.TOC), len(doc.Sections))
		}
		if len(doc.Tables) != 1 {
			t.Fatalf("len(Tables) = %d, want 1", len(doc.Tables))
		}
		if doc.Tables[0].SectionID != "pricing-summary" {
			t.Errorf("table SectionID = %q", doc.Tables[0].SectionID)
		}
		for _, sec := range doc.Sections {
			if sec.Content != "" && sec.HTML == "" {
				t.Errorf("section %q has content but no rendered markup", sec.ID)
			}
		}
	})

	t.Run("overview stub is replaced by the supplied value", func(t *testing.T) {
		t.Parallel()

		doc, err := p.Process(context.Background(), sampleProposal, PlaceholderValues{Overview: "Foo"})
		if err != nil {
			t.Fatalf("Process: %v", err)
		}

		var overview string
		for _, sec := range doc.Sections {
			if sec.ID == "project-overview" {
				overview = sec.Content
			}
		}
		if overview != "Foo" {
			t.Errorf("overview content = %q, want %q", overview, "Foo")
		}
	})

	t.Run("runs are deterministic", func(t *testing.T) {
		t.Parallel()

		a, err := p.Process(context.Background(), sampleProposal, PlaceholderValues{})
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		b, err := p.Process(context.Background(), sampleProposal, PlaceholderValues{})
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Error("identical inputs produced different documents")
		}
	})

	t.Run("concurrent runs do not share state", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			sampleProposal,
			"Scope of Work\nDeliver the THING on time.",
			"Objectives\n- ship it",
		}

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				input := inputs[i%len(inputs)]
				doc, err := p.Process(context.Background(), input, PlaceholderValues{})
				if err != nil {
					t.Errorf("Process: %v", err)
					return
				}
				// Placeholders from one input must never leak into
				// another run's stats.
				if input != sampleProposal {
					for _, ph := range doc.Validation.Stats.RemainingPlaceholders {
						if ph == "ROLE" || ph == "TOTAL" {
							t.Errorf("leaked placeholder %q into run for %q", ph, input)
						}
					}
				}
			}(i)
		}
		wg.Wait()
	})

	t.Run("cancelled context aborts the run", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := p.Process(ctx, sampleProposal, PlaceholderValues{}); err == nil {
			t.Error("expected error for cancelled context")
		}
	})

	t.Run("unstructured input still yields one section", func(t *testing.T) {
		t.Parallel()

		input := strings.Repeat("plain prose without any heading shape. ", 5)
		doc, err := p.Process(context.Background(), input, PlaceholderValues{})
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if len(doc.Sections) != 1 {
			t.Fatalf("len(Sections) = %d, want 1", len(doc.Sections))
		}
		if len(doc.TOC) != 1 {
			t.Errorf("len(TOC) = %d, want 1", len(doc.TOC))
		}
	})

	t.Run("validation score stays within bounds", func(t *testing.T) {
		t.Parallel()

		doc, err := p.Process(context.Background(), sampleProposal, PlaceholderValues{})
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if doc.Validation.Score < 0 || doc.Validation.Score > 100 {
			t.Errorf("Score = %d, out of [0,100]", doc.Validation.Score)
		}
	})
}
