package wish_test

import (
	"errors"
	"strings"
	"testing"

	"wishlist/internal/domain/wish"
)

// TestWishValidation tests validation of Wish.
func TestWishValidation(t *testing.T) {
	tests := []struct {
		name    string
		wish    wish.Wish
		wantErr bool
	}{
		{
			name: "valid wish with link",
			wish: wish.Wish{
				ID:          "w1",
				MemberID:    "m1",
				Text:        "Wool socks",
				ProductLink: "https://shop.example.com/socks",
			},
			wantErr: false,
		},
		{
			name: "valid wish without link",
			wish: wish.Wish{
				ID:       "w1",
				MemberID: "m1",
				Text:     "A surprise",
			},
			wantErr: false,
		},
		{
			name: "empty text",
			wish: wish.Wish{
				ID:       "w1",
				MemberID: "m1",
				Text:     "  ",
			},
			wantErr: true,
		},
		{
			name: "text too long",
			wish: wish.Wish{
				ID:       "w1",
				MemberID: "m1",
				Text:     strings.Repeat("x", wish.MaxTextLength+1),
			},
			wantErr: true,
		},
		{
			name: "relative link",
			wish: wish.Wish{
				ID:          "w1",
				MemberID:    "m1",
				Text:        "Wool socks",
				ProductLink: "/socks",
			},
			wantErr: true,
		},
		{
			name: "javascript link",
			wish: wish.Wish{
				ID:          "w1",
				MemberID:    "m1",
				Text:        "Wool socks",
				ProductLink: "javascript:alert(1)",
			},
			wantErr: true,
		},
		{
			name: "link too long",
			wish: wish.Wish{
				ID:          "w1",
				MemberID:    "m1",
				Text:        "Wool socks",
				ProductLink: "https://shop.example.com/" + strings.Repeat("x", wish.MaxLinkLength),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wish.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Wish.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestWishReserve tests the reservation lifecycle.
func TestWishReserve(t *testing.T) {
	t.Run("reserve free wish", func(t *testing.T) {
		w := wish.Wish{ID: "w1", MemberID: "m1", Text: "Socks"}
		if err := w.Reserve("m2"); err != nil {
			t.Fatalf("Reserve() error = %v", err)
		}
		if !w.Reserved || w.ReservedBy != "m2" {
			t.Errorf("after Reserve: Reserved=%v ReservedBy=%q", w.Reserved, w.ReservedBy)
		}
	})

	t.Run("reserve own wish", func(t *testing.T) {
		w := wish.Wish{ID: "w1", MemberID: "m1", Text: "Socks"}
		if err := w.Reserve("m1"); !errors.Is(err, wish.ErrReserveOwnWish) {
			t.Errorf("Reserve(own) error = %v, want ErrReserveOwnWish", err)
		}
	})

	t.Run("reserve taken wish", func(t *testing.T) {
		w := wish.Wish{ID: "w1", MemberID: "m1", Text: "Socks", Reserved: true, ReservedBy: "m2"}
		if err := w.Reserve("m3"); !errors.Is(err, wish.ErrAlreadyReserved) {
			t.Errorf("Reserve(taken) error = %v, want ErrAlreadyReserved", err)
		}
	})

	t.Run("release reserved wish", func(t *testing.T) {
		w := wish.Wish{ID: "w1", MemberID: "m1", Text: "Socks", Reserved: true, ReservedBy: "m2"}
		if err := w.Release(); err != nil {
			t.Fatalf("Release() error = %v", err)
		}
		if w.Reserved || w.ReservedBy != "" {
			t.Errorf("after Release: Reserved=%v ReservedBy=%q", w.Reserved, w.ReservedBy)
		}
	})

	t.Run("release free wish", func(t *testing.T) {
		w := wish.Wish{ID: "w1", MemberID: "m1", Text: "Socks"}
		if err := w.Release(); !errors.Is(err, wish.ErrNotReserved) {
			t.Errorf("Release(free) error = %v, want ErrNotReserved", err)
		}
	})
}
