package sqlexport

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nhath/ezchart/internal/diagram"
	"github.com/nhath/ezchart/internal/logging"
)

// ErrEmptyScript is returned when an export produced no statements
var ErrEmptyScript = errors.New("export produced an empty script")

// Generator turns a prompt into text. The Gemini client satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service produces dialect-specific scripts, either through an AI
// generator or the built-in translator.
type Service struct {
	ai      Generator
	timeout time.Duration
	log     logrus.FieldLogger
}

type Option func(*Service)

// WithGenerator routes non-generic exports through g.
func WithGenerator(g Generator) Option {
	return func(s *Service) { s.ai = g }
}

func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) { s.log = log }
}

func NewService(opts ...Option) *Service {
	s := &Service{log: logging.Discard()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// BaseSQL is the synchronous generic path.
func (s *Service) BaseSQL(d *diagram.Diagram) string {
	return BaseSQL(d)
}

// UsesAI reports whether non-generic exports go through the generator.
func (s *Service) UsesAI() bool {
	return s.ai != nil
}

// ExportSQL renders d for target. It honors ctx cancellation and returns the
// script as produced; callers decide whether an empty script is an error.
func (s *Service) ExportSQL(ctx context.Context, d *diagram.Diagram, target diagram.DatabaseType) (string, error) {
	if target == diagram.Generic {
		return BaseSQL(d), nil
	}
	if !target.Valid() {
		return "", fmt.Errorf("unsupported database type %q", target)
	}

	if s.ai == nil {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return Translate(d, target)
	}

	base := BaseSQL(d)
	if base == "" {
		return "", nil
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := s.ai.Generate(ctx, buildPrompt(base, d.DatabaseType, target))
	if err != nil {
		s.log.WithError(err).WithField("target", target).Warn("AI export failed")
		return "", fmt.Errorf("generate %s script: %w", target.Label(), err)
	}
	s.log.WithFields(logrus.Fields{
		"target":   target,
		"duration": time.Since(start),
	}).Debug("AI export finished")
	return stripFences(out), nil
}

// Script is ExportSQL with the empty result mapped to ErrEmptyScript.
func (s *Service) Script(ctx context.Context, d *diagram.Diagram, target diagram.DatabaseType) (string, error) {
	out, err := s.ExportSQL(ctx, d, target)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyScript
	}
	return out, nil
}

func buildPrompt(base string, source, target diagram.DatabaseType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Convert the following %s DDL script to %s.\n", source.Label(), target.Label())
	b.WriteString("Keep every table, column, index and foreign key. ")
	b.WriteString("Use the target's native types, identifier quoting and auto-increment syntax. ")
	b.WriteString("Reply with the SQL script only, no explanations and no markdown.\n\n")
	b.WriteString(base)
	return b.String()
}

var fence = regexp.MustCompile("(?s)^\\s*```[a-zA-Z]*\\n(.*?)\\n?```\\s*$")

func stripFences(s string) string {
	if m := fence.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return s + "\n"
}
