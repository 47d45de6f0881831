/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"fmt"

	"go.uber.org/zap"
)

// Role describes the relationship between an account and a token when its
// balance is being reconciled.
type Role int

const (
	// RoleHolder marks an ordinary account funded from the treasury.
	RoleHolder Role = iota
	// RoleTreasury marks the token's treasury account, which mints and burns
	// instead of transferring against itself.
	RoleTreasury
)

func (r Role) String() string {
	if r == RoleTreasury {
		return "treasury"
	}
	return "holder"
}

// Action is the operation required to move an account from its current token
// balance to an expected one.
type Action int

const (
	// ActionNone indicates the balances already match.
	ActionNone Action = iota
	// ActionMint mints the shortfall into the treasury.
	ActionMint
	// ActionFund transfers the shortfall from the treasury to the holder. The
	// treasury must sign.
	ActionFund
	// ActionBurn burns the treasury's surplus.
	ActionBurn
	// ActionReturn transfers the holder's surplus back to the treasury. The
	// holder must sign.
	ActionReturn
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionMint:
		return "mint"
	case ActionFund:
		return "fund"
	case ActionBurn:
		return "burn"
	case ActionReturn:
		return "return"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Step is the reconciliation decision for one (account, token) pair. Amount
// is always the magnitude of the balance difference, in raw units.
type Step struct {
	Action Action
	Amount uint64
}

// Reconcile computes the action that moves an account holding current raw
// units of a token to the expected raw amount. It is pure: callers own the
// balance query and the execution of the returned step.
func Reconcile(current, expected uint64, role Role) Step {
	switch {
	case current == expected:
		return Step{Action: ActionNone}
	case expected > current:
		if role == RoleTreasury {
			return Step{Action: ActionMint, Amount: expected - current}
		}
		return Step{Action: ActionFund, Amount: expected - current}
	default:
		if role == RoleTreasury {
			return Step{Action: ActionBurn, Amount: current - expected}
		}
		return Step{Action: ActionReturn, Amount: current - expected}
	}
}

// SetupResult records the outcome of one reconciliation attempt. Setup
// failures are deliberately non-fatal: the later assertion steps are the
// correctness gate, so callers log the result and continue.
type SetupResult struct {
	Account string
	Token   string
	Role    Role
	Step    Step
	Err     error
}

// Failed reports whether the reconciliation attempt failed.
func (r SetupResult) Failed() bool {
	return r.Err != nil
}

// LogSetup is the single call site that reports reconciliation outcomes.
func LogSetup(logger *zap.SugaredLogger, r SetupResult) {
	if r.Failed() {
		logger.Warnw("token balance setup failed, continuing",
			"account", r.Account,
			"token", r.Token,
			"role", r.Role.String(),
			"action", r.Step.Action.String(),
			"amount", r.Step.Amount,
			"error", r.Err,
		)
		return
	}
	logger.Debugw("token balance reconciled",
		"account", r.Account,
		"token", r.Token,
		"role", r.Role.String(),
		"action", r.Step.Action.String(),
		"amount", r.Step.Amount,
	)
}
