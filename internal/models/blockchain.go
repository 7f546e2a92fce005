package models

import "time"

const (
	ConnectionConnected    = "connected"
	ConnectionDisconnected = "disconnected"
)

// BlockchainConnection records a wallet/network pairing. At most one row is
// connected at a time.
type BlockchainConnection struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`
	WalletAddress  string     `gorm:"size:42;not null" json:"walletAddress"`
	NetworkURL     string     `gorm:"column:network_url;size:255;not null" json:"networkUrl"`
	NetworkName    string     `gorm:"size:100" json:"networkName"`
	ChainID        string     `gorm:"column:chain_id;size:32" json:"chainId"`
	BlockNumber    *int64     `json:"blockNumber"`
	Status         string     `gorm:"size:20;not null;index" json:"status"`
	ConnectedAt    time.Time  `gorm:"not null" json:"connectedAt"`
	DisconnectedAt *time.Time `json:"disconnectedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for BlockchainConnection model
func (BlockchainConnection) TableName() string {
	return "blockchain_connections"
}
