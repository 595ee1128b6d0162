package summarize

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Service dispatches summary requests to the selected engine
type Service struct {
	engines       map[string]Engine
	resolveEngine func() string
	resolvePrompt func() string
}

// NewService creates the summarization service. resolveEngine returns
// the engine name to use and resolvePrompt the configured custom prompt,
// both re-read on every request.
func NewService(resolveEngine, resolvePrompt func() string) *Service {
	return &Service{
		engines:       make(map[string]Engine),
		resolveEngine: resolveEngine,
		resolvePrompt: resolvePrompt,
	}
}

// Register adds an engine to the service
func (s *Service) Register(e Engine) {
	s.engines[e.Name()] = e
	log.Printf("[summarize] registered %s engine", e.Name())
}

// Engines lists registered engine names
func (s *Service) Engines() []string {
	names := make([]string, 0, len(s.engines))
	for name := range s.engines {
		names = append(names, name)
	}
	return names
}

// Engine resolves the currently selected engine
func (s *Service) Engine() (Engine, error) {
	return s.engineByName("")
}

func (s *Service) engineByName(name string) (Engine, error) {
	if name == "" {
		name = s.resolveEngine()
	}
	if name == "" {
		name = "openai"
	}
	eng, ok := s.engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown summary engine: %s", name)
	}
	return eng, nil
}

// Summarize runs the request through the selected engine
func (s *Service) Summarize(ctx context.Context, req Request) (string, error) {
	return s.SummarizeWith(ctx, "", req)
}

// SummarizeWith is Summarize with an explicit engine, used by queued
// jobs that pin the engine at enqueue time
func (s *Service) SummarizeWith(ctx context.Context, engineName string, req Request) (string, error) {
	eng, err := s.engineByName(engineName)
	if err != nil {
		return "", err
	}
	if req.Style == "custom" && req.CustomPrompt == "" && s.resolvePrompt != nil {
		req.CustomPrompt = s.resolvePrompt()
	}
	summary, err := eng.Summarize(ctx, req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}
