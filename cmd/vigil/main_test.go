package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectSelectionArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"vigil"},
			want: []string{"vigil"},
		},
		{
			name: "selection first token",
			in:   []string{"vigil", "a-b"},
			want: []string{"vigil", "present", "--p", "a-b"},
		},
		{
			name: "selection after value flag",
			in:   []string{"vigil", "--deck", "./deck.yaml", "a-b"},
			want: []string{"vigil", "--deck", "./deck.yaml", "present", "--p", "a-b"},
		},
		{
			name: "selection after equals flag",
			in:   []string{"vigil", "--deck=./deck.yaml", "a"},
			want: []string{"vigil", "--deck=./deck.yaml", "present", "--p", "a"},
		},
		{
			name: "selection after bool flag",
			in:   []string{"vigil", "--pretty", "a.b"},
			want: []string{"vigil", "--pretty", "present", "--p", "a.b"},
		},
		{
			name: "selection after double dash",
			in:   []string{"vigil", "--deck", "d", "--", "a"},
			want: []string{"vigil", "--deck", "d", "present", "--p", "a"},
		},
		{
			name: "subcommand not rewritten",
			in:   []string{"vigil", "link", "a", "b"},
			want: []string{"vigil", "link", "a", "b"},
		},
		{
			name: "flags only not rewritten",
			in:   []string{"vigil", "--deck", "d"},
			want: []string{"vigil", "--deck", "d"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectSelectionArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}
