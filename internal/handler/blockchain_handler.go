package handler

import (
	"net/http"

	"healthcare-admin-api/internal/service"
	"healthcare-admin-api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type BlockchainHandler struct {
	blockchainService *service.BlockchainService
	log               zerolog.Logger
}

func NewBlockchainHandler(blockchainService *service.BlockchainService, log zerolog.Logger) *BlockchainHandler {
	return &BlockchainHandler{
		blockchainService: blockchainService,
		log:               log,
	}
}

type ConnectRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required,wallet"`
	NetworkURL    string `json:"networkUrl" binding:"required,url"`
}

// Connect records a new active wallet/network connection (admin only)
func (h *BlockchainHandler) Connect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	conn, err := h.blockchainService.Connect(c.Request.Context(), actorFrom(c), req.WalletAddress, req.NetworkURL)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.CreatedResponse(c, conn)
}

// Status reports the active connection, if any
func (h *BlockchainHandler) Status(c *gin.Context) {
	status, err := h.blockchainService.Status(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.SuccessResponse(c, status)
}

// Disconnect closes the active connection (admin only)
func (h *BlockchainHandler) Disconnect(c *gin.Context) {
	if err := h.blockchainService.Disconnect(c.Request.Context(), actorFrom(c)); err != nil {
		respondError(c, h.log, err)
		return
	}

	utils.MessageResponse(c, "Blockchain disconnected successfully")
}
