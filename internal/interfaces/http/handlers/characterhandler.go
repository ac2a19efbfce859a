package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tavern/internal/application/character/usecases"
	"tavern/internal/domain/character"
	"tavern/internal/shared/logger"
	"tavern/internal/shared/utils"
)

type CharacterHandler struct {
	createCharacterUC *usecases.CreateCharacterUseCase
	listCharactersUC  *usecases.ListCharactersUseCase
	logger            logger.Interface
}

func NewCharacterHandler(
	createCharacterUC *usecases.CreateCharacterUseCase,
	listCharactersUC *usecases.ListCharactersUseCase,
) *CharacterHandler {
	return &CharacterHandler{
		createCharacterUC: createCharacterUC,
		listCharactersUC:  listCharactersUC,
		logger:            logger.NewLogger(),
	}
}

type CreateCharacterRequest struct {
	Name  string         `json:"name" binding:"required,min=1,max=100"`
	Sheet map[string]any `json:"sheet"`
}

type CharacterResponse struct {
	ID         uint           `json:"id"`
	OwnerID    uint           `json:"owner_id"`
	CampaignID *uint          `json:"campaign_id,omitempty"`
	Name       string         `json:"name"`
	Sheet      map[string]any `json:"sheet,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func toCharacterResponse(ch *character.Character) CharacterResponse {
	return CharacterResponse{
		ID:         ch.ID(),
		OwnerID:    ch.OwnerID(),
		CampaignID: ch.CampaignID(),
		Name:       ch.Name(),
		Sheet:      ch.Sheet(),
		CreatedAt:  ch.CreatedAt(),
	}
}

func (h *CharacterHandler) CreateCharacter(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create character", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.createCharacterUC.Execute(c.Request.Context(), usecases.CreateCharacterCommand{
		OwnerID: userID,
		Name:    req.Name,
		Sheet:   req.Sheet,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toCharacterResponse(result), "character created")
}

func (h *CharacterHandler) ListMyCharacters(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	characters, err := h.listCharactersUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]CharacterResponse, 0, len(characters))
	for _, ch := range characters {
		out = append(out, toCharacterResponse(ch))
	}
	utils.SuccessResponse(c, http.StatusOK, "", out)
}
