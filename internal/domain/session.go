package domain

import "github.com/shopspring/decimal"

// Session is the resolved identity that scopes the history query and the
// push topic. Resolution itself (OAuth, tokens) is a collaborator concern.
type Session struct {
	AccountID string
	Name      string
	Email     string
	Balance   decimal.Decimal
}

// AccountView is the bound account plus the last balance observed over the
// push channel. Balance is advisory display state, not ledger truth.
type AccountView struct {
	AccountID string
	Balance   decimal.Decimal
}
