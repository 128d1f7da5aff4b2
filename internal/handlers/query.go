package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	"pdfquery/internal/metrics"
	"pdfquery/internal/models"
	"pdfquery/internal/query"
	"pdfquery/internal/validation"
)

// QueryHandler searches the loaded documents.
type QueryHandler struct {
	docs           DocumentStore
	matcher        *query.Matcher
	maxQueryLength int
}

// NewQueryHandler creates a new query handler. A non-positive maxQueryLength
// disables the length check.
func NewQueryHandler(docs DocumentStore, matcher *query.Matcher, maxQueryLength int) *QueryHandler {
	return &QueryHandler{docs: docs, matcher: matcher, maxQueryLength: maxQueryLength}
}

// Query handles GET /query?q=...&use_regex=bool&case_sensitive=bool.
func (h *QueryHandler) Query(c fiber.Ctx) error {
	start := time.Now()

	q := c.Query("q")
	if valid, msg := validation.ValidateQuery(q, c.RequestCtx().QueryArgs().Has("q"), h.maxQueryLength); !valid {
		metrics.ObserveQuery("none", metrics.OutcomeRejected, 0)
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	useRegex, err := validation.ParseBool(c.Query("use_regex"), false)
	if err != nil {
		metrics.ObserveQuery("none", metrics.OutcomeRejected, 0)
		return jsonError(c, fiber.StatusBadRequest, "use_regex must be a boolean")
	}
	caseSensitive, err := validation.ParseBool(c.Query("case_sensitive"), false)
	if err != nil {
		metrics.ObserveQuery("none", metrics.OutcomeRejected, 0)
		return jsonError(c, fiber.StatusBadRequest, "case_sensitive must be a boolean")
	}

	out, err := h.matcher.Search(h.docs.Documents(), query.Request{
		Query:         q,
		UseRegex:      useRegex,
		CaseSensitive: caseSensitive,
	})
	if err != nil {
		var patternErr *query.PatternError
		if errors.As(err, &patternErr) {
			metrics.ObserveQuery(query.ModeRegex, metrics.OutcomeInvalid, time.Since(start))
			slog.Info("rejected invalid pattern",
				"request_id", requestid.FromContext(c), "pattern", patternErr.Pattern, "error", patternErr.Err)
			return jsonError(c, fiber.StatusBadRequest, patternErr.Error())
		}
		return err
	}

	n := len(out.Results)
	outcome := metrics.OutcomeNoMatch
	if n > 0 {
		outcome = metrics.OutcomeMatched
	}
	metrics.ObserveQuery(out.Mode, outcome, time.Since(start))

	if out.Skipped > 0 {
		slog.Warn("documents skipped during query",
			"request_id", requestid.FromContext(c), "skipped", out.Skipped)
	}
	slog.Debug("query served",
		"request_id", requestid.FromContext(c), "mode", out.Mode, "matches", n, "elapsed", time.Since(start))

	return c.JSON(models.QueryResponse{
		Query:        q,
		RegexEnabled: useRegex,
		MatchCount:   n,
		Results:      out.Results,
		Message:      fmt.Sprintf("%d matches found across %d PDFs.", n, n),
	})
}
