package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tnved-api/internal/domain"
	"tnved-api/internal/llm"
)

// ComposeFullName builds the product description handed to the
// classifier: trimmed product, optional extra in parentheses, optional
// manufacturer suffix. The literal string "null" in extra/manufacturer
// is treated as absent (the public widget sends it that way).
func ComposeFullName(manufacturer, product, extra string) string {
	full := strings.TrimSpace(product)

	if e := strings.TrimSpace(extra); e != "" && !strings.EqualFold(e, "null") {
		full += " (" + e + ")"
	}
	if m := strings.TrimSpace(manufacturer); m != "" && !strings.EqualFold(m, "null") {
		full += " — Производитель: " + m
	}
	return full
}

// DetectService runs a product description through the LLM classifier
// and normalizes the reply into a ClassificationResult.
type DetectService struct {
	llmClient llm.LLMClient
	cache     ResultCache
	logger    *zap.Logger
}

func NewDetectService(llmClient llm.LLMClient, cache ResultCache, logger *zap.Logger) *DetectService {
	if cache == nil {
		cache = NoopResultCache{}
	}
	return &DetectService{
		llmClient: llmClient,
		cache:     cache,
		logger:    logger,
	}
}

// Detect classifies fullName. A provider failure is returned to the
// caller; a malformed reply is not a failure mode — the pipeline
// degrades to sentinels and defaults instead.
func (s *DetectService) Detect(ctx context.Context, fullName string) (domain.ClassificationResult, error) {
	if res, ok := s.cacheLookup(ctx, fullName); ok {
		return res, nil
	}

	raw, err := s.llmClient.Generate(ctx, classifierSystemPrompt, buildClassifierPrompt(fullName))
	if err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("llm generate: %w", err)
	}

	result := ParseReply(raw)
	s.cacheStore(ctx, fullName, result)
	return result, nil
}

// Cache access is best effort on both sides; a broken cache degrades to
// a miss and never fails the request.
func (s *DetectService) cacheLookup(ctx context.Context, fullName string) (domain.ClassificationResult, bool) {
	res, ok, err := s.cache.Get(ctx, fullName)
	if err != nil {
		s.logger.Warn("result cache get failed", zap.Error(err))
		return domain.ClassificationResult{}, false
	}
	return res, ok
}

func (s *DetectService) cacheStore(ctx context.Context, fullName string, res domain.ClassificationResult) {
	if err := s.cache.Set(ctx, fullName, res); err != nil {
		s.logger.Warn("result cache set failed", zap.Error(err))
	}
}
