package models

import (
	"testing"
	"time"
)

func TestPaginatedRequestNormalize(t *testing.T) {
	got := PaginatedRequest{}.Normalize()
	if got.Page != DefaultPage || got.Results != DefaultResults {
		t.Fatalf("defaults = (%d, %d), want (%d, %d)", got.Page, got.Results, DefaultPage, DefaultResults)
	}
	if got.Direction != SortAscending {
		t.Fatalf("direction = %q, want %q", got.Direction, SortAscending)
	}

	got = PaginatedRequest{Page: 5000, Results: 5000, Direction: "desc"}.Normalize()
	if got.Page != MaxPage || got.Results != MaxResults {
		t.Fatalf("clamped = (%d, %d), want (%d, %d)", got.Page, got.Results, MaxPage, MaxResults)
	}
	if got.Direction != SortDescending {
		t.Fatalf("direction = %q, want %q", got.Direction, SortDescending)
	}
}

func TestPaginatedRequestOffset(t *testing.T) {
	req := PaginatedRequest{Page: 3, Results: 25}
	if got := req.Offset(); got != 50 {
		t.Fatalf("offset = %d, want 50", got)
	}
}

func TestOrderColumnFallsBackOutsideWhitelist(t *testing.T) {
	req := PaginatedRequest{OrderBy: "quantity; DROP TABLE parts"}
	if got := req.OrderColumn(PartSortColumns, "part_id"); got != "part_id" {
		t.Fatalf("column = %q, want part_id", got)
	}
	req.OrderBy = "binNumber2"
	if got := req.OrderColumn(PartSortColumns, "part_id"); got != "bin_number2" {
		t.Fatalf("column = %q, want bin_number2", got)
	}
}

func TestPartIsLowStock(t *testing.T) {
	cases := []struct {
		qty, threshold int64
		want           bool
	}{
		{qty: 5, threshold: 0, want: false},
		{qty: 5, threshold: 5, want: true},
		{qty: 6, threshold: 5, want: false},
		{qty: 0, threshold: 1, want: true},
	}
	for _, tc := range cases {
		p := Part{Quantity: tc.qty, LowStockThreshold: tc.threshold}
		if got := p.IsLowStock(); got != tc.want {
			t.Errorf("IsLowStock(qty=%d, threshold=%d) = %v, want %v", tc.qty, tc.threshold, got, tc.want)
		}
	}
}

func TestOAuthCredentialExpiredAndRedacted(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cred := OAuthCredential{Provider: "DigiKey", AccessToken: "abcdef123456", RefreshToken: "xy"}
	if cred.Expired(now) {
		t.Fatal("credential without expiry must not be expired")
	}
	cred.DateExpiresUtc = now
	if !cred.Expired(now) {
		t.Fatal("credential expiring now must be expired")
	}

	red := cred.Redacted()
	if red.AccessToken != "****3456" {
		t.Fatalf("access token = %q, want ****3456", red.AccessToken)
	}
	if red.RefreshToken != "****" {
		t.Fatalf("refresh token = %q, want ****", red.RefreshToken)
	}
	if cred.AccessToken != "abcdef123456" {
		t.Fatal("Redacted must not modify the original")
	}
}

func TestPasswordSetAndMatches(t *testing.T) {
	var p Password
	if err := p.Set("correct horse"); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err := p.Matches("correct horse")
	if err != nil || !ok {
		t.Fatalf("Matches(correct) = %v, %v", ok, err)
	}
	ok, err = p.Matches("wrong")
	if err != nil || ok {
		t.Fatalf("Matches(wrong) = %v, %v", ok, err)
	}
}
