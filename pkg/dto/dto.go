// Package dto holds the read-optimized representations returned by the API.
// Card numbers leave the issuance response once in full; everywhere else
// only the masked form appears.
package dto

import (
	"time"

	"github.com/fintechlab/bankapi/pkg/domain/account"
	"github.com/fintechlab/bankapi/pkg/domain/card"
	"github.com/fintechlab/bankapi/pkg/domain/holder"
	"github.com/fintechlab/bankapi/pkg/domain/transaction"
	"github.com/fintechlab/bankapi/pkg/domain/transfer"
)

// AccountRead is the API representation of an account.
type AccountRead struct {
	ID          string    `json:"id"`
	Number      string    `json:"number"`
	HolderID    string    `json:"holder_id"`
	Balance     float64   `json:"balance"`
	Currency    string    `json:"currency"`
	Description string    `json:"description,omitempty"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromAccount maps an account aggregate to its read DTO.
func FromAccount(a *account.Account) *AccountRead {
	return &AccountRead{
		ID:          a.ID.String(),
		Number:      a.Number.String(),
		HolderID:    a.HolderID,
		Balance:     a.Balance.AmountFloat(),
		Currency:    a.Currency().String(),
		Description: a.Description,
		IsDeleted:   a.IsDeleted,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// CardRead is the API representation of a card. The number is masked.
type CardRead struct {
	ID             string    `json:"id"`
	MaskedNumber   string    `json:"masked_number"`
	AccountID      string    `json:"account_id"`
	HolderName     string    `json:"holder_name"`
	ExpirationDate time.Time `json:"expiration_date"`
	CardType       string    `json:"card_type"`
	IsBlocked      bool      `json:"is_blocked"`
	IsTempBlocked  bool      `json:"is_temp_blocked"`
	IsDeleted      bool      `json:"is_deleted"`
	CreatedAt      time.Time `json:"created_at"`
}

// FromCard maps a card aggregate to its read DTO.
func FromCard(c *card.Card) *CardRead {
	return &CardRead{
		ID:             c.ID.String(),
		MaskedNumber:   c.Number.Masked(),
		AccountID:      c.AccountID.String(),
		HolderName:     c.HolderName,
		ExpirationDate: c.ExpirationDate,
		CardType:       string(c.CardType),
		IsBlocked:      c.IsBlocked,
		IsTempBlocked:  c.IsTempBlocked,
		IsDeleted:      c.IsDeleted,
		CreatedAt:      c.CreatedAt,
	}
}

// IssuedCard is the one response that carries the full card number, returned
// only from card issuance.
type IssuedCard struct {
	CardRead
	Number string `json:"number"`
}

// FromIssuedCard maps a freshly issued card, exposing the full number once.
func FromIssuedCard(c *card.Card) *IssuedCard {
	return &IssuedCard{
		CardRead: *FromCard(c),
		Number:   c.Number.String(),
	}
}

// TransactionRead is the API representation of a transaction.
type TransactionRead struct {
	ID              string    `json:"id"`
	SourceAccountID *string   `json:"source_account_id,omitempty"`
	TargetAccountID *string   `json:"target_account_id,omitempty"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	TxType          string    `json:"type"`
	Status          string    `json:"status"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// FromTransaction maps a transaction aggregate to its read DTO.
func FromTransaction(t *transaction.Transaction) *TransactionRead {
	r := &TransactionRead{
		ID:          t.ID.String(),
		Amount:      t.Amount.AmountFloat(),
		Currency:    t.Amount.Currency().String(),
		TxType:      string(t.TxType),
		Status:      string(t.Status),
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
	if t.SourceAccountID != nil {
		s := t.SourceAccountID.String()
		r.SourceAccountID = &s
	}
	if t.TargetAccountID != nil {
		s := t.TargetAccountID.String()
		r.TargetAccountID = &s
	}
	return r
}

// FromTransactions maps a slice of transactions.
func FromTransactions(txs []*transaction.Transaction) []*TransactionRead {
	out := make([]*TransactionRead, 0, len(txs))
	for _, t := range txs {
		out = append(out, FromTransaction(t))
	}
	return out
}

// TransferRead is the API representation of a money transfer.
type TransferRead struct {
	ID               string    `json:"id"`
	SourceCardMasked string    `json:"source_card"`
	TargetCardMasked string    `json:"target_card"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	Description      string    `json:"description,omitempty"`
	FailureReason    string    `json:"failure_reason,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// FromTransfer maps a money transfer aggregate to its read DTO.
func FromTransfer(mt *transfer.MoneyTransfer) *TransferRead {
	return &TransferRead{
		ID:               mt.ID.String(),
		SourceCardMasked: mt.SourceCardNumber.Masked(),
		TargetCardMasked: mt.TargetCardNumber.Masked(),
		Amount:           mt.Amount.AmountFloat(),
		Currency:         mt.Amount.Currency().String(),
		Status:           string(mt.Status),
		Description:      mt.Description,
		FailureReason:    mt.FailureReason,
		CreatedAt:        mt.CreatedAt,
	}
}

// FromTransfers maps a slice of money transfers.
func FromTransfers(mts []*transfer.MoneyTransfer) []*TransferRead {
	out := make([]*TransferRead, 0, len(mts))
	for _, mt := range mts {
		out = append(out, FromTransfer(mt))
	}
	return out
}

// HolderRead is the API representation of an account holder.
type HolderRead struct {
	ID          string          `json:"id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone,omitempty"`
	DateOfBirth time.Time       `json:"date_of_birth"`
	Address     *holder.Address `json:"address,omitempty"`
	IsDeleted   bool            `json:"is_deleted"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FromHolder maps an account holder aggregate to its read DTO.
func FromHolder(h *holder.AccountHolder) *HolderRead {
	return &HolderRead{
		ID:          h.ID,
		FirstName:   h.FirstName,
		LastName:    h.LastName,
		Email:       h.Email.String(),
		Phone:       h.Phone.String(),
		DateOfBirth: h.DateOfBirth,
		Address:     h.Address,
		IsDeleted:   h.IsDeleted,
		CreatedAt:   h.CreatedAt,
	}
}
