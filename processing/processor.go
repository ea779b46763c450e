package processing

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/ByLCY/leasap/llm"
)

// AckTokens caps the model's reply to every payload but the last.
const AckTokens = 5

// Processor runs the prompt exchange for one document at a time.
type Processor struct {
	llm llm.Completer
	log *slog.Logger
}

// NewProcessor returns a Processor using c. A nil logger discards output.
func NewProcessor(c llm.Completer, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Processor{llm: c, log: logger}
}

// Questionnaire asks the model for questions about segments and parses them.
func (p *Processor) Questionnaire(ctx context.Context, segments []string, cfg QuestionnaireConfig) (Result, error) {
	if cfg.Kind == "" {
		cfg.Kind = DefaultQuestionnaire.Kind
	}
	if _, err := ParseAnswerKind(string(cfg.Kind)); err != nil {
		return Result{}, err
	}
	if cfg.NumQuestions <= 0 {
		cfg.NumQuestions = DefaultQuestionnaire.NumQuestions
	}
	reply, err := p.converse(ctx, Payloads(segments, QuestionnaireAction(cfg)))
	if err != nil {
		return Result{}, err
	}
	qs := ParseQuestionnaire(reply, cfg.Kind, NumChoices)
	p.log.Info("questionnaire parsed", "questions", len(qs), "kind", string(cfg.Kind))
	if len(qs) == 0 {
		p.log.Warn("model reply contained no numbered questions")
	}
	return Result{Service: ServiceQuestionnaire, Questionnaire: qs}, nil
}

// Summary asks the model to summarize segments.
func (p *Processor) Summary(ctx context.Context, segments []string, cfg SummaryConfig) (Result, error) {
	if cfg.Kind == "" {
		cfg.Kind = DefaultSummary.Kind
	}
	if _, err := ParseSummaryKind(string(cfg.Kind)); err != nil {
		return Result{}, err
	}
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = DefaultSummary.MaxWords
	}
	reply, err := p.converse(ctx, Payloads(segments, SummaryAction(cfg)))
	if err != nil {
		return Result{}, err
	}
	return Result{Service: ServiceSummary, Summary: reply}, nil
}

// Run dispatches to Questionnaire or Summary.
func (p *Processor) Run(ctx context.Context, service Service, segments []string, q QuestionnaireConfig, s SummaryConfig) (Result, error) {
	switch service {
	case ServiceQuestionnaire:
		return p.Questionnaire(ctx, segments, q)
	case ServiceSummary:
		return p.Summary(ctx, segments, s)
	}
	return Result{}, errors.Wrapf(ErrUnknownService, "%q", service)
}

// converse sends payloads as one conversation and returns the last reply.
func (p *Processor) converse(ctx context.Context, payloads []string) (string, error) {
	if len(payloads) == 0 {
		return "", ErrNoContent
	}
	var history []llm.Message
	for i, payload := range payloads {
		if err := ctx.Err(); err != nil {
			return "", errors.Wrap(err, "conversation aborted")
		}
		history = append(history, llm.Message{Role: llm.RoleUser, Content: payload})
		last := i == len(payloads)-1
		maxTokens := AckTokens
		if last {
			maxTokens = 0
		}
		p.log.Debug("sending payload", "part", i+1, "of", len(payloads), "bytes", len(payload))
		reply, err := p.llm.Complete(ctx, history, maxTokens)
		if err != nil {
			return "", errors.Wrapf(err, "failed to send part %d of %d", i+1, len(payloads))
		}
		if last {
			return reply, nil
		}
		history = append(history, llm.Message{Role: llm.RoleAssistant, Content: reply})
	}
	return "", nil
}
