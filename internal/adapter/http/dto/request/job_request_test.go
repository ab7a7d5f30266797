package request

import (
	"errors"
	"testing"
)

func TestJobCreateRequest_ResolvePriceCents(t *testing.T) {
	cases := []struct {
		name    string
		price   string
		want    int64
		wantErr bool
	}{
		{name: "whole dollars", price: "100.00", want: 10000},
		{name: "with cents", price: "19.99", want: 1999},
		{name: "no decimals", price: "7", want: 700},
		{name: "whitespace", price: " 0.50 ", want: 50},
		{name: "sub-cent", price: "1.005", wantErr: true},
		{name: "zero", price: "0", wantErr: true},
		{name: "negative", price: "-5.00", wantErr: true},
		{name: "not a number", price: "ten", wantErr: true},
		{name: "empty", price: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := JobCreateRequest{Name: "j", Price: tc.price}.ResolvePriceCents()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidPrice) {
					t.Fatalf("expected ErrInvalidPrice, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
