package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Execution is the audit record written after a strategy fires. The strategy
// row is gone by then, so the snapshot column keeps what it looked like.
type Execution struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	StrategyID string `gorm:"type:varchar(8);not null;index"`
	Ticker     string `gorm:"type:varchar(5);not null;index"`
	Side       Side   `gorm:"type:varchar(4);not null"`

	Quantity      int             `gorm:"not null"`
	Quote         decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	RealizedValue decimal.Decimal `gorm:"type:numeric(30,2);not null"`

	Snapshot datatypes.JSON `gorm:"type:jsonb"`

	ExecutedAt time.Time `gorm:"type:timestamptz;not null;index"`
	CreatedAt  time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (Execution) TableName() string {
	return "executions"
}
