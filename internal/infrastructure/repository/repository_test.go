package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tavern/internal/domain/campaign"
	"tavern/internal/domain/character"
	"tavern/internal/domain/entitlement"
	"tavern/internal/domain/invitation"
	"tavern/internal/infrastructure/persistence/models"
	"tavern/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.UserLimitsModel{},
		&models.CampaignModel{},
		&models.CampaignMemberModel{},
		&models.CharacterModel{},
		&models.InvitationModel{},
		&models.JoinRequestModel{},
		&models.FeedbackModel{},
	))
	return db
}

func TestUserLimitsRepository_EnsureDefaultsIsInsertOrIgnore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserLimitsRepository(db, logger.NewLogger())
	ctx := context.Background()

	require.NoError(t, repo.EnsureDefaults(ctx, 1))

	limits, err := repo.GetByUserID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, limits)
	assert.Equal(t, entitlement.DefaultLimits(1), *limits)

	// a plan change rewrites the row
	premium := entitlement.EnforcementDefaults(entitlement.PlanPremium)
	premium.UserID = 1
	require.NoError(t, repo.Upsert(ctx, premium))

	// bootstrapping again must not claw the row back to defaults
	require.NoError(t, repo.EnsureDefaults(ctx, 1))

	limits, err = repo.GetByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, premium.MaxCampaignsCreated, limits.MaxCampaignsCreated)
	assert.Equal(t, premium.MaxJoinedCampaigns, limits.MaxJoinedCampaigns)
}

func TestUserLimitsRepository_GetByUserIDReturnsNilWhenAbsent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserLimitsRepository(db, logger.NewLogger())

	limits, err := repo.GetByUserID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, limits)
}

func TestCampaignRepository_CreateWithCapStopsAtCeiling(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCampaignRepository(db, logger.NewLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		c, err := campaign.NewCampaign(1, "Curse of the Amber Keep", "")
		require.NoError(t, err)
		require.NoError(t, repo.CreateWithCap(ctx, c, 3))
		assert.NotZero(t, c.ID())
	}

	c, err := campaign.NewCampaign(1, "One campaign too many", "")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.CreateWithCap(ctx, c, 3), campaign.ErrCampaignCapReached)

	count, err := repo.CountOwnedByUser(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	// another owner is unaffected
	other, err := campaign.NewCampaign(2, "Fresh start", "")
	require.NoError(t, err)
	require.NoError(t, repo.CreateWithCap(ctx, other, 3))
}

func TestCampaignRepository_CreateWithCapRecoversOwnID(t *testing.T) {
	db := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := NewCampaignRepository(db, logger.NewLogger())
	ctx := context.Background()

	// racing creations by the same owner must each get their own row's ID,
	// not whichever row happens to be newest at read time
	const n = 8
	var wg sync.WaitGroup
	ids := make([]uint, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := campaign.NewCampaign(1, fmt.Sprintf("Campaign %02d", i), "")
			if err != nil {
				errs[i] = err
				return
			}
			if err := repo.CreateWithCap(ctx, c, n); err != nil {
				errs[i] = err
				return
			}
			ids[i] = c.ID()
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		got, err := repo.GetByID(ctx, ids[i])
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("Campaign %02d", i), got.Name())
	}
}

func TestCampaignRepository_OwnershipPredicates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCampaignRepository(db, logger.NewLogger())
	ctx := context.Background()

	has, err := repo.HasOwnedCampaign(ctx, 1)
	require.NoError(t, err)
	assert.False(t, has)

	c, err := campaign.NewCampaign(1, "The Sunken Vault", "intro arc")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, c))

	has, err = repo.HasOwnedCampaign(ctx, 1)
	require.NoError(t, err)
	assert.True(t, has)

	ownerID, err := repo.GetOwnerID(ctx, c.ID())
	require.NoError(t, err)
	assert.Equal(t, uint(1), ownerID)

	ownerID, err = repo.GetOwnerID(ctx, 999)
	require.NoError(t, err)
	assert.Zero(t, ownerID, "absent campaign resolves to owner 0")
}

func TestMembershipRepository_AddPlayerWithCap(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMembershipRepository(db, logger.NewLogger())
	ctx := context.Background()

	for userID := uint(10); userID < 12; userID++ {
		require.NoError(t, repo.AddPlayerWithCap(ctx, 1, userID, 2))
	}

	assert.ErrorIs(t, repo.AddPlayerWithCap(ctx, 1, 12, 2), campaign.ErrPlayerCapReached)

	// re-adding an existing player trips the unique pair, not the cap
	assert.ErrorIs(t, repo.AddPlayerWithCap(ctx, 1, 10, 5), campaign.ErrAlreadyMember)

	count, err := repo.CountPlayers(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestMembershipRepository_InsertsIntoDeployedSchema(t *testing.T) {
	// mirror the column layout of the goose init script instead of letting
	// AutoMigrate derive it from the model
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE campaign_members (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		campaign_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'player',
		created_at DATETIME NULL,
		UNIQUE (campaign_id, user_id)
	)`).Error)

	repo := NewMembershipRepository(db, logger.NewLogger())
	ctx := context.Background()

	gm, err := campaign.NewMember(1, 1, campaign.MemberRoleGM)
	require.NoError(t, err)
	require.NoError(t, repo.AddMember(ctx, gm))

	require.NoError(t, repo.AddPlayerWithCap(ctx, 1, 2, 5))

	count, err := repo.CountPlayers(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMembershipRepository_CountPlayersExcludesGM(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMembershipRepository(db, logger.NewLogger())
	ctx := context.Background()

	gm, err := campaign.NewMember(1, 1, campaign.MemberRoleGM)
	require.NoError(t, err)
	require.NoError(t, repo.AddMember(ctx, gm))

	player, err := campaign.NewMember(1, 2, campaign.MemberRolePlayer)
	require.NoError(t, err)
	require.NoError(t, repo.AddMember(ctx, player))

	count, err := repo.CountPlayers(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	isMember, err := repo.IsMember(ctx, 1, 1)
	require.NoError(t, err)
	assert.True(t, isMember, "the GM row still counts as membership")
}

func TestMembershipRepository_CountJoinedCampaignsAsPlayer(t *testing.T) {
	db := setupTestDB(t)
	memberRepo := NewMembershipRepository(db, logger.NewLogger())
	campaignRepo := NewCampaignRepository(db, logger.NewLogger())
	invitationRepo := NewInvitationRepository(db, logger.NewLogger())
	characterRepo := NewCharacterRepository(db, logger.NewLogger())
	ctx := context.Background()

	// user 5 owns campaign A, plays in B through all three channels,
	// plays in C through an accepted invite, and declined an invite to D
	mkCampaign := func(ownerID uint, name string) uint {
		c, err := campaign.NewCampaign(ownerID, name, "")
		require.NoError(t, err)
		require.NoError(t, campaignRepo.Create(ctx, c))
		return c.ID()
	}
	campA := mkCampaign(5, "Owned by five")
	campB := mkCampaign(6, "Triple channel")
	campC := mkCampaign(7, "Invite only")
	campD := mkCampaign(8, "Declined")

	// channel 1: player-role membership in B
	m, err := campaign.NewMember(campB, 5, campaign.MemberRolePlayer)
	require.NoError(t, err)
	require.NoError(t, memberRepo.AddMember(ctx, m))

	// channel 2: accepted invites to B and C, declined to D
	mkInvite := func(campaignID uint, accept bool) {
		inv, err := invitation.NewInvitation(campaignID, 9, 5)
		require.NoError(t, err)
		require.NoError(t, invitationRepo.Create(ctx, inv))
		if accept {
			require.NoError(t, inv.Accept())
		} else {
			require.NoError(t, inv.Decline())
		}
		require.NoError(t, invitationRepo.Update(ctx, inv))
	}
	mkInvite(campB, true)
	mkInvite(campC, true)
	mkInvite(campD, false)

	// channel 3: characters linked into B and into the owned campaign A
	mkLinkedCharacter := func(campaignID uint, name string) {
		ch, err := character.NewCharacter(5, name, nil)
		require.NoError(t, err)
		require.NoError(t, ch.LinkToCampaign(campaignID))
		require.NoError(t, characterRepo.Create(ctx, ch))
	}
	mkLinkedCharacter(campB, "Vella of the Marsh")
	mkLinkedCharacter(campA, "Self-insert NPC")

	// B counts once despite three channels, C once, A never (owned),
	// D never (declined)
	count, err := memberRepo.CountJoinedCampaignsAsPlayer(ctx, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
