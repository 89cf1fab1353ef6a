package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the trade direction of a strategy. Buy strategies wait for the
// price to fall to the target, sell strategies wait for it to rise.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Strategy is a registered conditional trade. Records are fully populated at
// admission and never updated afterwards; the monitor only reads and removes them.
type Strategy struct {
	ID     string `gorm:"type:varchar(8);primaryKey"`
	Ticker string `gorm:"type:varchar(5);not null;index"`
	Side   Side   `gorm:"type:varchar(4);not null"`

	// PriceMovementPercent is the drop (buy) or rise (sell) from the start
	// price that arms the trigger.
	PriceMovementPercent decimal.Decimal `gorm:"type:numeric(20,10);not null"`
	Quantity             int             `gorm:"not null"`

	StartPrice  decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	TargetPrice decimal.Decimal `gorm:"type:numeric(20,2);not null"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (Strategy) TableName() string {
	return "strategies"
}
