package handle

import (
	"fmt"

	"github.com/joshuapare/handlekit/pkg/types"
)

func policyError(op, value string) error {
	return &types.Error{
		Kind: types.ErrKindPolicy,
		Msg:  fmt.Sprintf("%s: %s", op, value),
		Err:  types.ErrInvalidPolicy,
	}
}

func lockedError(op string, highestEver Handle) error {
	return &types.Error{
		Kind: types.ErrKindState,
		Msg:  fmt.Sprintf("%s: handle %d already dispensed", op, highestEver),
		Err:  types.ErrConfigurationLocked,
	}
}

func exhaustedError(limit Handle) error {
	return &types.Error{
		Kind: types.ErrKindExhausted,
		Msg:  fmt.Sprintf("next: counter reached limit %d", limit),
		Err:  types.ErrOutOfHandles,
	}
}

func releaseError(h Handle, reason string) error {
	return &types.Error{
		Kind:      types.ErrKindInvalidRelease,
		Msg:       fmt.Sprintf("release: handle %d %s", h, reason),
		Handle:    h,
		HasHandle: true,
		Err:       types.ErrInvalidRelease,
	}
}
