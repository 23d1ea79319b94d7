package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyq/policyq-cli/internal/cache"
	"github.com/policyq/policyq-cli/internal/core/domain"
)

// mockIndexer implements driving.IndexerService.
type mockIndexer struct {
	indexed    []domain.IndexedChunk
	backfilled int
	lastText   string
	lastDocID  string
}

func (m *mockIndexer) IndexDocument(_ context.Context, text, documentID string) ([]domain.IndexedChunk, error) {
	m.lastText = text
	m.lastDocID = documentID
	return m.indexed, nil
}

func (m *mockIndexer) BackfillEmbeddings(_ context.Context, _ string) (int, error) {
	return m.backfilled, nil
}

// mockAnswerer implements driving.AnswerService.
type mockAnswerer struct {
	answer     domain.Answer
	analysis   domain.PolicyAnalysis
	comparison string
}

func (m *mockAnswerer) AnswerQuestion(_ context.Context, _, _ string) (domain.Answer, error) {
	return m.answer, nil
}

func (m *mockAnswerer) AnalyzePolicy(_ context.Context, _ string) (domain.PolicyAnalysis, error) {
	return m.analysis, nil
}

func (m *mockAnswerer) ComparePolicies(_ context.Context, _, _ string) (string, error) {
	return m.comparison, nil
}

// setupTestServices installs mock services and returns a cleanup func.
func setupTestServices(indexer *mockIndexer, answerer *mockAnswerer) func() {
	oldIndexer, oldAnswerer, oldManager := indexerService, answerService, cacheManager

	indexerService = indexer
	answerService = answerer
	cacheManager = cache.DefaultManager()

	return func() {
		indexerService = oldIndexer
		answerService = oldAnswerer
		cacheManager = oldManager
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestIndexCmd_Output(t *testing.T) {
	indexer := &mockIndexer{indexed: []domain.IndexedChunk{
		{Content: "a", Embedded: true},
		{Content: "b", Embedded: true},
		{Content: "c", Embedded: false},
	}}
	cleanup := setupTestServices(indexer, &mockAnswerer{})
	defer cleanup()

	path := writeTempFile(t, "policy.txt", "policy text here")
	out, err := execute(t, "index", path)

	require.NoError(t, err)
	assert.Contains(t, out, "3 chunks stored, 2 embedded")
	assert.Contains(t, out, "backfill", "partial embedding hints at the backfill command")
	assert.Equal(t, "policy text here", indexer.lastText)
	assert.Equal(t, "policy", indexer.lastDocID, "document ID defaults to the file name")
}

func TestIndexCmd_ExplicitID(t *testing.T) {
	indexer := &mockIndexer{}
	cleanup := setupTestServices(indexer, &mockAnswerer{})
	defer cleanup()

	path := writeTempFile(t, "policy.txt", "text")
	_, err := execute(t, "index", "--id", "my-policy", path)

	require.NoError(t, err)
	assert.Equal(t, "my-policy", indexer.lastDocID)
}

func TestIndexCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices(&mockIndexer{}, &mockAnswerer{})
	defer cleanup()

	_, err := execute(t, "index", "/nonexistent/policy.txt")

	assert.Error(t, err)
}

func TestBackfillCmd(t *testing.T) {
	cleanup := setupTestServices(&mockIndexer{backfilled: 7}, &mockAnswerer{})
	defer cleanup()

	out, err := execute(t, "backfill")

	require.NoError(t, err)
	assert.Contains(t, out, "Backfilled 7 chunks")
}

func TestBackfillCmd_NothingToDo(t *testing.T) {
	cleanup := setupTestServices(&mockIndexer{}, &mockAnswerer{})
	defer cleanup()

	out, err := execute(t, "backfill")

	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to backfill")
}

func TestAskCmd_TextOutput(t *testing.T) {
	answerer := &mockAnswerer{answer: domain.Answer{
		Answer:  "Your premium is Rs 12,000 per year.",
		Backend: "groq-pool-1",
		Citations: []domain.Citation{
			{ChunkID: "c1", Excerpt: "premium of Rs 12,000", Score: 0.88},
		},
	}}
	cleanup := setupTestServices(&mockIndexer{}, answerer)
	defer cleanup()

	out, err := execute(t, "ask", "what is my premium?")

	require.NoError(t, err)
	assert.Contains(t, out, "Your premium is Rs 12,000 per year.")
	assert.Contains(t, out, "Sources:")
	assert.Contains(t, out, "premium of Rs 12,000")
	assert.Contains(t, out, "Answered by: groq-pool-1")
}

func TestAskCmd_JSONOutput(t *testing.T) {
	answerer := &mockAnswerer{answer: domain.Answer{Answer: "json answer", Backend: "gemini"}}
	cleanup := setupTestServices(&mockIndexer{}, answerer)
	defer cleanup()

	out, err := execute(t, "ask", "--json", "anything")

	require.NoError(t, err)
	assert.Contains(t, out, `"Answer": "json answer"`)
}

func TestAskCmd_RequiresQuestion(t *testing.T) {
	cleanup := setupTestServices(&mockIndexer{}, &mockAnswerer{})
	defer cleanup()

	_, err := execute(t, "ask")

	assert.Error(t, err)
}

func TestAnalyzeCmd_TextOutput(t *testing.T) {
	answerer := &mockAnswerer{analysis: domain.PolicyAnalysis{
		PolicyType:          "Health",
		Provider:            "Acme",
		CoverageAmount:      "Rs 5,00,000",
		Premium:             "Rs 12,000",
		Deductible:          "None",
		Coverage:            "Hospitalisation.",
		Exclusions:          "Cosmetic surgery.",
		ClaimProcess:        "Notify within 48 hours.",
		KeyFeatures:         []string{"Cashless network"},
		ClaimReadinessScore: 72,
	}}
	cleanup := setupTestServices(&mockIndexer{}, answerer)
	defer cleanup()

	path := writeTempFile(t, "policy.txt", "text")
	out, err := execute(t, "analyze", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Policy type:     Health")
	assert.Contains(t, out, "Cashless network")
	assert.Contains(t, out, "72/100")
}

func TestAnalyzeCmd_JSONOutput(t *testing.T) {
	answerer := &mockAnswerer{analysis: domain.DefaultPolicyAnalysis()}
	cleanup := setupTestServices(&mockIndexer{}, answerer)
	defer cleanup()

	path := writeTempFile(t, "policy.txt", "text")
	out, err := execute(t, "analyze", "--json", path)

	require.NoError(t, err)
	assert.Contains(t, out, `"policy_type": "Unknown"`)
}

func TestCompareCmd(t *testing.T) {
	answerer := &mockAnswerer{comparison: "## Coverage\nPolicy A wins."}
	cleanup := setupTestServices(&mockIndexer{}, answerer)
	defer cleanup()

	pathA := writeTempFile(t, "a.txt", "policy a")
	pathB := writeTempFile(t, "b.txt", "policy b")
	out, err := execute(t, "compare", pathA, pathB)

	require.NoError(t, err)
	assert.Contains(t, out, "Policy A wins.")
}

func TestCompareCmd_RequiresTwoFiles(t *testing.T) {
	cleanup := setupTestServices(&mockIndexer{}, &mockAnswerer{})
	defer cleanup()

	_, err := execute(t, "compare", "only-one.txt")

	assert.Error(t, err)
}

func TestStatsCmd(t *testing.T) {
	cleanup := setupTestServices(&mockIndexer{}, &mockAnswerer{})
	defer cleanup()

	// Populate a cache so the numbers are non-trivial.
	embeddings := cacheManager.Get(cache.EmbeddingsCache)
	require.NotNil(t, embeddings)
	embeddings.Set("k", []float32{1, 2, 3}, time.Hour)
	embeddings.Get("k")
	embeddings.Get("absent")

	out, err := execute(t, "stats")

	require.NoError(t, err)
	assert.Contains(t, out, "Caches:")
	assert.Contains(t, out, cache.EmbeddingsCache)
	assert.Contains(t, out, cache.CompletionsCache)
	assert.Contains(t, out, cache.AnalysisCache)
}

// mockChecker implements HealthChecker.
type mockChecker struct {
	name string
	err  error
}

func (m *mockChecker) Name() string                 { return m.name }
func (m *mockChecker) Ping(_ context.Context) error { return m.err }

func setHealthCheckersForTest(t *testing.T, checkers ...HealthChecker) {
	t.Helper()
	old := healthCheckers
	healthCheckers = checkers
	t.Cleanup(func() { healthCheckers = old })
}

func TestCheckCmd_AllReachable(t *testing.T) {
	setHealthCheckersForTest(t,
		&mockChecker{name: "groq-pool-1"},
		&mockChecker{name: "gemini"},
	)

	out, err := execute(t, "check")

	require.NoError(t, err)
	assert.Contains(t, out, "groq-pool-1")
	assert.Contains(t, out, "gemini")
	assert.Contains(t, out, "2 of 2 providers reachable")
}

func TestCheckCmd_PartiallyReachable(t *testing.T) {
	setHealthCheckersForTest(t,
		&mockChecker{name: "groq-pool-1", err: errors.New("401 unauthorized")},
		&mockChecker{name: "gemini"},
	)

	out, err := execute(t, "check")

	require.NoError(t, err)
	assert.Contains(t, out, "unreachable: 401 unauthorized")
	assert.Contains(t, out, "1 of 2 providers reachable")
}

func TestCheckCmd_NoneReachable(t *testing.T) {
	setHealthCheckersForTest(t, &mockChecker{name: "groq-pool-1", err: errors.New("down")})

	_, err := execute(t, "check")

	assert.Error(t, err)
}

func TestCheckCmd_NoneConfigured(t *testing.T) {
	setHealthCheckersForTest(t)

	out, err := execute(t, "check")

	require.NoError(t, err)
	assert.Contains(t, out, "rule-based")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "policyq version")
}

func TestCommandsFailWithoutServices(t *testing.T) {
	oldIndexer, oldAnswerer := indexerService, answerService
	indexerService, answerService = nil, nil
	defer func() {
		indexerService, answerService = oldIndexer, oldAnswerer
	}()

	path := writeTempFile(t, "p.txt", "text")

	_, err := execute(t, "index", path)
	assert.Error(t, err)

	_, err = execute(t, "ask", "q")
	assert.Error(t, err)
}
