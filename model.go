package alere

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/etnz/alere/date"
)

// Identifiers of the persisted entities.
type (
	AccountID     int64
	CommodityID   int64
	TransactionID int64
	SplitID       int64
	PayeeID       int64
	ScenarioID    int64
	KindID        int64
)

// NoScenario denotes the baseline actuals. Every scenario sees them.
const NoScenario ScenarioID = 0

// Category is the broad classification of an account kind.
type Category int

const (
	Expense   Category = 0
	Income    Category = 1
	Equity    Category = 2
	Asset     Category = 3
	Liability Category = 4
)

// AccountKind drives which accounts participate in which aggregate.
type AccountKind struct {
	ID              KindID
	Name            string
	Category        Category
	IsNetworth      bool
	IsPassiveIncome bool
	IsWorkIncome    bool
	IsUnrealized    bool
	IsMiscTax       bool
	IsIncomeTax     bool
	IsTrading       bool
	IsStock         bool
}

// IsLiquid reports whether accounts of this kind count as liquid assets.
func (k AccountKind) IsLiquid() bool { return k.Category == Equity && k.IsNetworth }

// IsRealizedIncome reports whether the kind is an income that was cashed.
func (k AccountKind) IsRealizedIncome() bool { return k.Category == Income && !k.IsUnrealized }

// Account holds shares of a single commodity.
type Account struct {
	ID        AccountID
	Name      string
	Commodity CommodityID
	SCU       int64 // quantities are stored multiplied by SCU
	Kind      KindID
	Parent    AccountID
	Closed    bool
}

// Shares converts a scaled quantity of this account into shares.
func (a Account) Shares(scaledQty int64) decimal.Decimal {
	return scaled(scaledQty, a.SCU)
}

// Commodity is a unit of value: a currency or a traded instrument.
type Commodity struct {
	ID          CommodityID
	Name        string
	Symbol      string // quote symbol, the ticker of traded instruments
	ISOCode     string // currencies only
	IsCurrency  bool
	PriceScale  int64 // values and prices are stored multiplied by PriceScale
	QuoteSource string
}

// Code returns the short name used when displaying amounts.
func (c Commodity) Code() string {
	switch {
	case c.ISOCode != "":
		return c.ISOCode
	case c.Symbol != "":
		return c.Symbol
	default:
		return c.Name
	}
}

// Value converts a scaled value expressed in this commodity.
func (c Commodity) Value(scaledValue int64) decimal.Decimal {
	return scaled(scaledValue, c.PriceScale)
}

func scaled(v, scale int64) decimal.Decimal {
	if scale <= 0 {
		scale = 1
	}
	return decimal.NewFromInt(v).Div(decimal.NewFromInt(scale))
}

// PriceQuote is the price of one Origin in Target from Date until the next
// quote of the same pair.
type PriceQuote struct {
	Origin      CommodityID
	Target      CommodityID
	Date        date.Date
	ScaledPrice int64 // scaled by the origin's PriceScale
}

// Split is one leg of a transaction.
type Split struct {
	ID             SplitID
	Transaction    TransactionID
	Account        AccountID
	ScaledQty      int64 // in account SCU
	ScaledValue    int64 // in value commodity PriceScale
	ValueCommodity CommodityID
	PostDate       date.Date
	Reconcile      string // "n", "c" or "R"
	Payee          PayeeID
}

// Transaction is a balanced set of splits.
//
// A transaction with a Recurrence rule is scheduled: its splits are a
// template, materialized at each occurrence after LastOccurrence.
type Transaction struct {
	ID             TransactionID
	Timestamp      date.Date
	Memo           string
	CheckNumber    string
	Scenario       ScenarioID
	Recurrence     string
	LastOccurrence date.Date // zero when no occurrence was ever confirmed
	Splits         []Split
}

// IsRecurring reports whether the transaction is scheduled.
func (t Transaction) IsRecurring() bool { return strings.TrimSpace(t.Recurrence) != "" }

// VisibleIn reports whether the transaction is part of scenario s.
func (t Transaction) VisibleIn(s ScenarioID) bool {
	return t.Scenario == NoScenario || t.Scenario == s
}

type Payee struct {
	ID   PayeeID
	Name string
}

type Scenario struct {
	ID   ScenarioID
	Name string
}
