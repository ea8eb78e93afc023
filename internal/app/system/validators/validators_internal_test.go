package validators

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestCommandCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int32
	}{
		{"command error", mongo.CommandError{Code: codeNamespaceExists}, codeNamespaceExists},
		{"wrapped", fmt.Errorf("create: %w", mongo.CommandError{Code: codeNotImplemented}), codeNotImplemented},
		{"plain error", errors.New("already exists"), 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := commandCode(tt.err); got != tt.want {
				t.Errorf("commandCode = %d, want %d", got, tt.want)
			}
		})
	}
}
