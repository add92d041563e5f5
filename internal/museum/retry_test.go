package museum

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"museumhub/pkg/models"
	"museumhub/pkg/utils"
)

func TestLookupRecord(t *testing.T) {
	errBoom := errors.New("boom")
	status := func(code int) error { return &StatusError{Source: "test", StatusCode: code} }

	tests := []struct {
		name      string
		errs      []error // returned in order; success afterwards
		retries   int
		wantCalls int
		wantRec   bool
		wantErr   bool
	}{
		{"immediate success", nil, 3, 1, true, false},
		{"rate limited then ok", []error{status(http.StatusTooManyRequests)}, 3, 2, true, false},
		{"server errors then ok", []error{status(500), status(503), status(502)}, 3, 4, true, false},
		{"budget exhausted", []error{status(500), status(500), status(500), status(500)}, 3, 4, false, true},
		{"no retries", []error{status(500)}, 0, 1, false, true},
		{"not found", []error{status(http.StatusNotFound)}, 3, 1, false, false},
		{"forbidden", []error{status(http.StatusForbidden)}, 3, 1, false, false},
		{"bad request is not retried", []error{status(http.StatusBadRequest)}, 3, 1, false, true},
		{"unexpected error is not retried", []error{errBoom}, 3, 1, false, true},
		{"deadline is retried", []error{context.DeadlineExceeded}, 3, 2, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			rec, err := lookupRecord(context.Background(), tt.retries, func(context.Context) (*int, error) {
				calls++
				if calls <= len(tt.errs) {
					return nil, tt.errs[calls-1]
				}
				v := 1
				return &v, nil
			})
			if calls != tt.wantCalls {
				t.Fatalf("want %d calls, got %d", tt.wantCalls, calls)
			}
			if (rec != nil) != tt.wantRec {
				t.Fatalf("want record %v, got %v", tt.wantRec, rec)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("want error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLookupRecord_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := lookupRecord(ctx, 3, func(context.Context) (*int, error) {
		calls++
		cancel()
		return nil, &StatusError{StatusCode: 503}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("want 1 call, got %d", calls)
	}
}

func TestCollect_KeepsEarlierBatchesOnLaterFailure(t *testing.T) {
	next := func(_ context.Context, n int) (int, []models.Artwork, error) {
		if n == 1 {
			return 2, arts(models.SourceAIC, "1", "2"), nil
		}
		return 0, nil, errors.New("page 2 failed")
	}
	got, err := collect(context.Background(), utils.DiscardLogger(), 1, 10, 2, 5, next)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want the first batch, got %v", ids(got))
	}

	_, err = collect(context.Background(), utils.DiscardLogger(), 2, 10, 2, 5, next)
	if err == nil {
		t.Fatalf("a failing first batch must surface its error")
	}
}

func TestCollect_BoundedByMaxBatches(t *testing.T) {
	calls := 0
	next := func(_ context.Context, n int) (int, []models.Artwork, error) {
		calls++
		return 48, nil, nil
	}
	got, err := collect(context.Background(), utils.DiscardLogger(), 1, 10, 48, 3, next)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 || calls != 3 {
		t.Fatalf("want 3 empty batches, got %d calls and %v", calls, got)
	}
}
