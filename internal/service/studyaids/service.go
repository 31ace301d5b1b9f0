package studyaids

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"legalpad/internal/config"
	"legalpad/internal/domain"
	domainllm "legalpad/internal/domain/services/llm"
)

// GenerationFailedHTML is the fixed placeholder substituted when a provider
// call fails. The UI renders it in place of the generated content; the
// failure never propagates to the caller.
const GenerationFailedHTML = `<p class="generation-error">Generation failed. Please try again.</p>`

// ExplainStatuteRequest asks for a plain-language statute explanation.
type ExplainStatuteRequest struct {
	Jurisdiction string `json:"jurisdiction"`
	Statute      string `json:"statute"`
	Question     string `json:"question"`
}

// DigestCaseRequest asks for a facts/issue/holding/reasoning case digest.
type DigestCaseRequest struct {
	CaseName string `json:"case_name"`
	Citation string `json:"citation"`
	Focus    string `json:"focus"`
}

// QuizQuestionRequest asks for one multiple-choice bar-exam question.
type QuizQuestionRequest struct {
	Subject    string `json:"subject"`
	Difficulty string `json:"difficulty"`
}

// DraftContractRequest asks for a numbered-clause contract draft.
type DraftContractRequest struct {
	ContractType string `json:"contract_type"`
	PartyA       string `json:"party_a"`
	PartyB       string `json:"party_b"`
	Terms        string `json:"terms"`
}

// Service renders prompts for the study-aid surfaces and makes exactly one
// generation attempt per call. Provider failures degrade to fixed
// placeholders so the UI always has something consistent to render.
type Service struct {
	generator domainllm.Generator
	prompts   *PromptLibrary
	model     string
	logger    *slog.Logger
}

// NewService creates a study-aid service bound to a generator and the
// configured default model.
func NewService(generator domainllm.Generator, cfg *config.Config, logger *slog.Logger) (*Service, error) {
	prompts, err := LoadPromptLibrary()
	if err != nil {
		return nil, fmt.Errorf("load prompt library: %w", err)
	}

	return &Service{
		generator: generator,
		prompts:   prompts,
		model:     cfg.DefaultModel,
		logger:    logger,
	}, nil
}

// ExplainStatute returns an HTML explanation of a statute.
func (s *Service) ExplainStatute(ctx context.Context, req *ExplainStatuteRequest) (string, error) {
	if err := s.validateExplainStatute(req); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.generateHTML(ctx, "statute_explainer", req), nil
}

// DigestCase returns an HTML case digest.
func (s *Service) DigestCase(ctx context.Context, req *DigestCaseRequest) (string, error) {
	if err := s.validateDigestCase(req); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.generateHTML(ctx, "case_digest", req), nil
}

// DraftContract returns an HTML contract draft.
func (s *Service) DraftContract(ctx context.Context, req *DraftContractRequest) (string, error) {
	if err := s.validateDraftContract(req); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return s.generateHTML(ctx, "contract_draft", req), nil
}

// QuizQuestion returns one structured bar-exam question. A provider failure
// or a malformed reply yields the canned fallback question for the subject.
func (s *Service) QuizQuestion(ctx context.Context, req *QuizQuestionRequest) (*QuizQuestion, error) {
	if err := s.validateQuizQuestion(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if req.Difficulty == "" {
		req.Difficulty = "moderate"
	}

	prompt, err := s.prompts.Render("quiz_question", req)
	if err != nil {
		s.logger.Error("failed to render quiz prompt", "error", err)
		return FallbackQuestion(req.Subject), nil
	}

	raw, err := s.generator.GenerateText(ctx, &domainllm.GenerateRequest{
		Model:  s.model,
		System: s.prompts.System("quiz_question"),
		Prompt: prompt,
	})
	if err != nil {
		s.logger.Warn("quiz generation failed, using fallback question",
			"subject", req.Subject,
			"error", err,
		)
		return FallbackQuestion(req.Subject), nil
	}

	question, err := ParseQuizReply(raw)
	if err != nil {
		s.logger.Warn("quiz reply was malformed, using fallback question",
			"subject", req.Subject,
			"error", err,
		)
		return FallbackQuestion(req.Subject), nil
	}

	return question, nil
}

// generateHTML makes the single generation attempt for an HTML surface and
// substitutes the placeholder on any failure.
func (s *Service) generateHTML(ctx context.Context, surface string, data any) string {
	prompt, err := s.prompts.Render(surface, data)
	if err != nil {
		s.logger.Error("failed to render prompt", "surface", surface, "error", err)
		return GenerationFailedHTML
	}

	html, err := s.generator.GenerateText(ctx, &domainllm.GenerateRequest{
		Model:  s.model,
		System: s.prompts.System(surface),
		Prompt: prompt,
	})
	if err != nil {
		s.logger.Warn("generation failed, substituting placeholder",
			"surface", surface,
			"error", err,
		)
		return GenerationFailedHTML
	}

	return html
}

func (s *Service) validateExplainStatute(req *ExplainStatuteRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Jurisdiction, validation.Required, validation.Length(1, config.MaxPromptFieldLength)),
		validation.Field(&req.Statute, validation.Required, validation.Length(1, config.MaxPromptFieldLength)),
		validation.Field(&req.Question, validation.Length(0, config.MaxPromptFieldLength)),
	)
}

func (s *Service) validateDigestCase(req *DigestCaseRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.CaseName, validation.Required, validation.Length(1, config.MaxPromptFieldLength)),
		validation.Field(&req.Citation, validation.Length(0, config.MaxPromptFieldLength)),
		validation.Field(&req.Focus, validation.Length(0, config.MaxPromptFieldLength)),
	)
}

func (s *Service) validateQuizQuestion(req *QuizQuestionRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Subject, validation.Required, validation.Length(1, config.MaxPromptFieldLength)),
		validation.Field(&req.Difficulty, validation.In("", "easy", "moderate", "hard")),
	)
}

func (s *Service) validateDraftContract(req *DraftContractRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ContractType, validation.Required, validation.Length(1, config.MaxPromptFieldLength)),
		validation.Field(&req.PartyA, validation.Required, validation.Length(1, config.MaxPromptFieldLength)),
		validation.Field(&req.PartyB, validation.Required, validation.Length(1, config.MaxPromptFieldLength)),
		validation.Field(&req.Terms, validation.Required, validation.Length(1, config.MaxPromptFieldLength)),
	)
}
