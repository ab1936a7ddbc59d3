package mahjong

import (
	"errors"
	"fmt"
)

// ErrIllegalAction 所有非法操作的根错误，调用方应先查询 LegalChoices
var ErrIllegalAction = errors.New("illegal action")

var (
	ErrGameEnded            = fmt.Errorf("%w: game ended", ErrIllegalAction)
	ErrInvalidSeat          = fmt.Errorf("%w: invalid seat", ErrIllegalAction)
	ErrNotYourTurn          = fmt.Errorf("%w: not your turn", ErrIllegalAction)
	ErrIllegalDraw          = fmt.Errorf("%w: draw", ErrIllegalAction)
	ErrIllegalDiscard       = fmt.Errorf("%w: discard", ErrIllegalAction)
	ErrIllegalPeng          = fmt.Errorf("%w: peng", ErrIllegalAction)
	ErrIllegalKongExposed   = fmt.Errorf("%w: kong exposed", ErrIllegalAction)
	ErrIllegalKongConcealed = fmt.Errorf("%w: kong concealed", ErrIllegalAction)
	ErrIllegalKongAdded     = fmt.Errorf("%w: kong added", ErrIllegalAction)
	ErrNoPongToUpgrade      = fmt.Errorf("%w: no pong to upgrade", ErrIllegalKongAdded)
	ErrNoPendingRobKong     = fmt.Errorf("%w: no pending rob kong", ErrIllegalAction)
	ErrNotRobber            = fmt.Errorf("%w: not robber", ErrIllegalAction)
	ErrCannotWin            = fmt.Errorf("%w: hand not complete", ErrIllegalAction)
	ErrNothingToPass        = fmt.Errorf("%w: nothing to pass", ErrIllegalAction)
	ErrWallNotExhausted     = fmt.Errorf("%w: wall not exhausted", ErrIllegalAction)
	ErrUnknownAction        = fmt.Errorf("%w: unknown action", ErrIllegalAction)
)
