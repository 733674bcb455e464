package scopebuilder

import (
	"fmt"

	"github.com/shinyvision/kls/internal/scope"
)

func errKindMismatch(want string, got scope.Kind) error {
	return fmt.Errorf("scopebuilder: expected %s scope, got %T", want, got)
}
