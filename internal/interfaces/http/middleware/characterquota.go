package middleware

import (
	"github.com/gin-gonic/gin"

	entitlementUC "tavern/internal/application/entitlement/usecases"
	"tavern/internal/domain/character"
	"tavern/internal/infrastructure/metrics"
	"tavern/internal/shared/constants"
	"tavern/internal/shared/errors"
	"tavern/internal/shared/logger"
	"tavern/internal/shared/utils"
)

// CharacterQuotaMiddleware gates character creation. The applicable ceiling
// depends on whether the actor runs any campaign: GMs get the larger NPC
// allowance, pure players the smaller one.
type CharacterQuotaMiddleware struct {
	characterRepo     character.Repository
	getCharacterLimit *entitlementUC.GetCharacterLimitUseCase
	logger            logger.Interface
}

func NewCharacterQuotaMiddleware(
	characterRepo character.Repository,
	getCharacterLimit *entitlementUC.GetCharacterLimitUseCase,
	logger logger.Interface,
) *CharacterQuotaMiddleware {
	return &CharacterQuotaMiddleware{
		characterRepo:     characterRepo,
		getCharacterLimit: getCharacterLimit,
		logger:            logger,
	}
}

// CheckCharacterCreation rejects character creation once the actor owns as
// many characters as their applicable ceiling allows.
func (m *CharacterQuotaMiddleware) CheckCharacterCreation() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c)
		if !ok {
			return
		}
		if actorIsAdmin(c) {
			c.Next()
			return
		}

		limit, err := m.getCharacterLimit.Execute(c.Request.Context(), userID)
		if err != nil {
			m.logger.Errorw("failed to resolve character limit", "user_id", userID, "error", err)
			m.rejectInternal(c)
			return
		}

		current, err := m.characterRepo.CountByOwner(c.Request.Context(), userID)
		if err != nil {
			m.logger.Errorw("failed to count characters", "user_id", userID, "error", err)
			m.rejectInternal(c)
			return
		}

		if int(current) >= limit {
			metrics.ObserveQuotaCheck(constants.QuotaResourceCharacters, metrics.OutcomeRejected)
			utils.QuotaExceededResponse(c, constants.QuotaResourceCharacters, limit, int(current))
			c.Abort()
			return
		}

		metrics.ObserveQuotaCheck(constants.QuotaResourceCharacters, metrics.OutcomeAllowed)
		c.Next()
	}
}

func (m *CharacterQuotaMiddleware) rejectInternal(c *gin.Context) {
	metrics.ObserveQuotaCheck(constants.QuotaResourceCharacters, metrics.OutcomeError)
	utils.ErrorResponseWithError(c, errors.NewInternalError(constants.ErrMsgInternalServerError))
	c.Abort()
}
