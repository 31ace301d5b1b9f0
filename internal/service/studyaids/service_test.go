package studyaids

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"legalpad/internal/config"
	"legalpad/internal/domain"
	domainllm "legalpad/internal/domain/services/llm"
)

// stubGenerator returns a fixed reply or a fixed error, recording the last
// request for assertions.
type stubGenerator struct {
	reply string
	err   error
	last  *domainllm.GenerateRequest
}

func (g *stubGenerator) GenerateText(ctx context.Context, req *domainllm.GenerateRequest) (string, error) {
	g.last = req
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func newTestService(t *testing.T, gen *stubGenerator) *Service {
	t.Helper()
	cfg := &config.Config{DefaultModel: "lorem-fast"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := NewService(gen, cfg, logger)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func TestExplainStatute(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the generated HTML", func(t *testing.T) {
		gen := &stubGenerator{reply: "<h3>UCC § 2-207</h3><p>Battle of the forms.</p>"}
		svc := newTestService(t, gen)

		html, err := svc.ExplainStatute(ctx, &ExplainStatuteRequest{
			Jurisdiction: "US Federal",
			Statute:      "UCC § 2-207",
		})
		if err != nil {
			t.Fatalf("ExplainStatute() error = %v", err)
		}
		if html != gen.reply {
			t.Errorf("html = %q, want the generated reply", html)
		}
		if gen.last == nil || gen.last.Model != "lorem-fast" {
			t.Errorf("generator not called with the configured model")
		}
		if !strings.Contains(gen.last.Prompt, "UCC § 2-207") {
			t.Errorf("prompt does not contain the statute: %q", gen.last.Prompt)
		}
	})

	t.Run("substitutes the placeholder on provider failure", func(t *testing.T) {
		gen := &stubGenerator{err: errors.New("provider unavailable")}
		svc := newTestService(t, gen)

		html, err := svc.ExplainStatute(ctx, &ExplainStatuteRequest{
			Jurisdiction: "California",
			Statute:      "Civ. Code § 1624",
		})
		if err != nil {
			t.Fatalf("ExplainStatute() error = %v, want nil (failure degrades)", err)
		}
		if html != GenerationFailedHTML {
			t.Errorf("html = %q, want the placeholder", html)
		}
	})

	t.Run("rejects a missing statute", func(t *testing.T) {
		svc := newTestService(t, &stubGenerator{reply: "ok"})

		_, err := svc.ExplainStatute(ctx, &ExplainStatuteRequest{Jurisdiction: "US Federal"})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("ExplainStatute() error = %v, want ErrValidation", err)
		}
	})
}

func TestDigestCase(t *testing.T) {
	ctx := context.Background()

	t.Run("renders the case into the prompt", func(t *testing.T) {
		gen := &stubGenerator{reply: "<h3>Palsgraf</h3>"}
		svc := newTestService(t, gen)

		html, err := svc.DigestCase(ctx, &DigestCaseRequest{
			CaseName: "Palsgraf v. Long Island R.R.",
			Citation: "248 N.Y. 339 (1928)",
		})
		if err != nil {
			t.Fatalf("DigestCase() error = %v", err)
		}
		if html != gen.reply {
			t.Errorf("html = %q", html)
		}
		if !strings.Contains(gen.last.Prompt, "Palsgraf") {
			t.Errorf("prompt does not contain the case name")
		}
	})

	t.Run("rejects a missing case name", func(t *testing.T) {
		svc := newTestService(t, &stubGenerator{reply: "ok"})
		if _, err := svc.DigestCase(ctx, &DigestCaseRequest{}); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("DigestCase() error = %v, want ErrValidation", err)
		}
	})
}

func TestDraftContract(t *testing.T) {
	ctx := context.Background()

	t.Run("requires all four fields", func(t *testing.T) {
		svc := newTestService(t, &stubGenerator{reply: "ok"})

		_, err := svc.DraftContract(ctx, &DraftContractRequest{
			ContractType: "NDA",
			PartyA:       "Acme Corp",
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("DraftContract() error = %v, want ErrValidation", err)
		}
	})

	t.Run("placeholder on failure", func(t *testing.T) {
		gen := &stubGenerator{err: errors.New("timeout")}
		svc := newTestService(t, gen)

		html, err := svc.DraftContract(ctx, &DraftContractRequest{
			ContractType: "NDA",
			PartyA:       "Acme Corp",
			PartyB:       "Beta LLC",
			Terms:        "Two-year mutual confidentiality.",
		})
		if err != nil {
			t.Fatalf("DraftContract() error = %v", err)
		}
		if html != GenerationFailedHTML {
			t.Errorf("html = %q, want the placeholder", html)
		}
	})
}

func TestQuizQuestion(t *testing.T) {
	ctx := context.Background()
	validReply := `{"question": "Q?", "choices": ["a","b","c","d"], "correct_answer_index": 1, "explanation": "b is right", "citation": ""}`

	t.Run("parses a well-formed reply", func(t *testing.T) {
		gen := &stubGenerator{reply: validReply}
		svc := newTestService(t, gen)

		q, err := svc.QuizQuestion(ctx, &QuizQuestionRequest{Subject: "Evidence", Difficulty: "hard"})
		if err != nil {
			t.Fatalf("QuizQuestion() error = %v", err)
		}
		if q.CorrectAnswerIndex != 1 {
			t.Errorf("correct index = %d, want 1", q.CorrectAnswerIndex)
		}
		if !strings.Contains(gen.last.Prompt, "Evidence") {
			t.Errorf("prompt does not contain the subject")
		}
		if !strings.Contains(gen.last.Prompt, "hard") {
			t.Errorf("prompt does not contain the difficulty")
		}
	})

	t.Run("defaults difficulty to moderate", func(t *testing.T) {
		gen := &stubGenerator{reply: validReply}
		svc := newTestService(t, gen)

		if _, err := svc.QuizQuestion(ctx, &QuizQuestionRequest{Subject: "Torts"}); err != nil {
			t.Fatalf("QuizQuestion() error = %v", err)
		}
		if !strings.Contains(gen.last.Prompt, "moderate") {
			t.Errorf("prompt does not contain the default difficulty: %q", gen.last.Prompt)
		}
	})

	t.Run("fallback on provider failure", func(t *testing.T) {
		gen := &stubGenerator{err: errors.New("provider unavailable")}
		svc := newTestService(t, gen)

		q, err := svc.QuizQuestion(ctx, &QuizQuestionRequest{Subject: "Property"})
		if err != nil {
			t.Fatalf("QuizQuestion() error = %v, want nil (failure degrades)", err)
		}
		if !strings.Contains(q.Question, "Property") {
			t.Errorf("fallback question = %q, want the subject mentioned", q.Question)
		}
		if len(q.Choices) != 4 {
			t.Errorf("fallback has %d choices, want 4", len(q.Choices))
		}
	})

	t.Run("fallback on malformed reply", func(t *testing.T) {
		gen := &stubGenerator{reply: "I am unable to write JSON today."}
		svc := newTestService(t, gen)

		q, err := svc.QuizQuestion(ctx, &QuizQuestionRequest{Subject: "Contracts"})
		if err != nil {
			t.Fatalf("QuizQuestion() error = %v", err)
		}
		if !strings.Contains(q.Question, "Contracts") {
			t.Errorf("malformed reply did not yield the fallback question")
		}
	})

	t.Run("rejects an unknown difficulty", func(t *testing.T) {
		svc := newTestService(t, &stubGenerator{reply: validReply})

		_, err := svc.QuizQuestion(ctx, &QuizQuestionRequest{Subject: "Torts", Difficulty: "impossible"})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("QuizQuestion() error = %v, want ErrValidation", err)
		}
	})
}
