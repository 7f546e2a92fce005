package repository

import (
	"context"
	"time"

	"healthcare-admin-api/internal/models"

	"gorm.io/gorm"
)

type BlockchainRepository struct {
	db *gorm.DB
}

func NewBlockchainRepo(db *gorm.DB) *BlockchainRepository {
	return &BlockchainRepository{db: db}
}

// ReplaceConnection disconnects every connected row and inserts conn as the
// only connected row, atomically.
func (r *BlockchainRepository) ReplaceConnection(ctx context.Context, conn *models.BlockchainConnection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := disconnectAll(tx, conn.ConnectedAt); err != nil {
			return err
		}
		conn.Status = models.ConnectionConnected
		return translate(tx.Create(conn).Error)
	})
}

// GetActiveConnection returns the connected row.
func (r *BlockchainRepository) GetActiveConnection(ctx context.Context) (*models.BlockchainConnection, error) {
	var conn models.BlockchainConnection
	err := r.db.WithContext(ctx).
		Where("status = ?", models.ConnectionConnected).
		Order("connected_at DESC").
		First(&conn).Error
	if err != nil {
		return nil, translate(err)
	}
	return &conn, nil
}

// Disconnect marks connected rows as disconnected and returns how many changed.
func (r *BlockchainRepository) Disconnect(ctx context.Context, at time.Time) (int64, error) {
	return disconnectAll(r.db.WithContext(ctx), at)
}

func disconnectAll(db *gorm.DB, at time.Time) (int64, error) {
	res := db.Model(&models.BlockchainConnection{}).
		Where("status = ?", models.ConnectionConnected).
		Updates(map[string]interface{}{
			"status":          models.ConnectionDisconnected,
			"disconnected_at": at,
		})
	return res.RowsAffected, res.Error
}
