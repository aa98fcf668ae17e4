package postcodes_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/ukaji3/wardlookup/pkg/wardlookup/postcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// fakeService mimics the postcodes.io single and bulk endpoints.
type fakeService struct {
	mu          sync.Mutex
	known       map[string]string // normalized code -> formatted code
	batchStatus int
	// batchBody, if set, is returned with HTTP 200 for every bulk request.
	batchBody   string
	singleCalls []string
	batchCalls  [][]string
	userAgents  []string
}

func newFakeService(t *testing.T, known ...string) (*fakeService, *httptest.Server) {
	t.Helper()
	svc := &fakeService{known: map[string]string{}, batchStatus: http.StatusOK}
	for _, code := range known {
		svc.known[postcodes.Normalize(code)] = code
	}
	server := httptest.NewServer(svc)
	t.Cleanup(server.Close)
	return svc, server
}

func (s *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userAgents = append(s.userAgents, r.Header.Get("User-Agent"))
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/postcodes":
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Postcodes []string `json:"postcodes"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.batchCalls = append(s.batchCalls, req.Postcodes)
		if s.batchBody != "" {
			_, _ = io.WriteString(w, s.batchBody)
			return
		}
		if s.batchStatus != http.StatusOK {
			w.WriteHeader(s.batchStatus)
			_, _ = fmt.Fprintf(w, `{"status":%d,"error":"unavailable"}`, s.batchStatus)
			return
		}
		items := make([]string, 0, len(req.Postcodes))
		for _, code := range req.Postcodes {
			items = append(items, fmt.Sprintf(`{"query":%q,"result":%s}`, code, s.resultJSON(code)))
		}
		_, _ = fmt.Fprintf(w, `{"status":200,"result":[%s]}`, strings.Join(items, ","))
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/postcodes/"):
		code := strings.TrimPrefix(r.URL.Path, "/postcodes/")
		s.singleCalls = append(s.singleCalls, code)
		if _, ok := s.known[code]; !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":404,"error":"Invalid postcode"}`))
			return
		}
		_, _ = fmt.Fprintf(w, `{"status":200,"result":%s}`, s.resultJSON(code))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *fakeService) resultJSON(code string) string {
	formatted, ok := s.known[code]
	if !ok {
		return "null"
	}
	return fmt.Sprintf(`{"postcode":%q,"admin_ward":"Ward %s","admin_district":"Westminster",`+
		`"parliamentary_constituency":"Cities of London and Westminster","region":"London",`+
		`"country":"England","latitude":51.501009,"longitude":-0.141588}`, formatted, code)
}

func (s *fakeService) counts() (batch, single int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batchCalls), len(s.singleCalls)
}

// sleepRecorder counts delays instead of sleeping.
type sleepRecorder struct {
	calls []time.Duration
}

func (r *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	r.calls = append(r.calls, d)
	return nil
}

func newTestClient(t *testing.T, server *httptest.Server, opts ...postcodes.Option) (*postcodes.Client, *sleepRecorder) {
	t.Helper()
	recorder := &sleepRecorder{}
	base := []postcodes.Option{
		postcodes.WithBaseURL(server.URL),
		postcodes.WithSleep(recorder.sleep),
	}
	client, err := postcodes.New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client, recorder
}
