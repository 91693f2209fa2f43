package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"growthspring/club_lending/internal/pkg/common"
	"growthspring/club_lending/internal/pkg/consts"
	"growthspring/club_lending/internal/pkg/loan"
	"growthspring/club_lending/internal/pkg/logger"
	"growthspring/club_lending/internal/pkg/models"
	"growthspring/club_lending/internal/pkg/utils"
)

const eligibilityCachePrefix = "lending:eligibility:"

type EligibilityCheckService struct {
	cfg        loan.Config
	memberRepo MemberRepo
	loanRepo   LoanRepo
	redisStore RedisStoreOperations
	cacheTTL   time.Duration
}

func NewEligibilityCheckService(cfg loan.Config, memberRepo MemberRepo, loanRepo LoanRepo, redisStore RedisStoreOperations, cacheTTL time.Duration) *EligibilityCheckService {
	return &EligibilityCheckService{
		cfg:        cfg,
		memberRepo: memberRepo,
		loanRepo:   loanRepo,
		redisStore: redisStore,
		cacheTTL:   cacheTTL,
	}
}

// EligibilityCheck reports what the member could borrow right now,
// without committing anything. Amount and duration are optional: when
// given the response carries a yes/no verdict, when omitted only the
// computed limits.
func (h *EligibilityCheckService) EligibilityCheck(ctx context.Context, req models.EligibilityCheckRequest) (*models.EligibilityCheckResponse, error) {

	memberID, err := utils.ToObjectID(req.MemberId)
	if err != nil {
		return nil, err
	}
	if _, err := utils.IsValidLoanType(req.Type); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("%s%s:%s:%.0f:%d", eligibilityCachePrefix, memberID.Hex(), req.Type, req.Amount, req.Duration)
	if cached := h.cachedResponse(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	member, err := h.memberRepo.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var response *models.EligibilityCheckResponse
	switch req.Type {
	case consts.StandardLoanType:
		response, err = h.standardEligibility(ctx, member, req, now)
	case consts.InterestFreeLoanType:
		response, err = h.freeLoanEligibility(member, req, now)
	default:
		return nil, consts.ErrorUnknownLoanType
	}
	if err != nil {
		return nil, err
	}

	h.cacheResponse(ctx, cacheKey, response)
	return response, nil
}

// Limits drift as units accrue, so cached verdicts are only held briefly.
func (h *EligibilityCheckService) cachedResponse(ctx context.Context, key string) *models.EligibilityCheckResponse {
	if h.cacheTTL <= 0 {
		return nil
	}
	raw, err := h.redisStore.Get(ctx, key)
	if err != nil {
		return nil
	}
	data, ok := raw.([]byte)
	if !ok || len(data) == 0 {
		return nil
	}
	var response models.EligibilityCheckResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil
	}
	return &response
}

func (h *EligibilityCheckService) cacheResponse(ctx context.Context, key string, response *models.EligibilityCheckResponse) {
	if h.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := h.redisStore.Set(ctx, key, data, h.cacheTTL); err != nil {
		logger.Warn(ctx, "eligibility cache write failed: %v", err)
	}
}

func (h *EligibilityCheckService) standardEligibility(ctx context.Context, member *models.Member, req models.EligibilityCheckRequest, now time.Time) (*models.EligibilityCheckResponse, error) {

	limit, err := standardLoanLimit(ctx, h.cfg, h.loanRepo, member, now)
	if err != nil {
		return nil, err
	}

	savings := memberSavings(member)
	interest12, err := interestPaidLast12(ctx, h.cfg, h.loanRepo, member.ID, now)
	if err != nil {
		return nil, err
	}
	multiplier := loan.LimitMultiplier(h.cfg.Multiplier, interest12, savings)

	var eligible *bool
	if req.Amount > 0 {
		verdict := req.Amount <= limit
		eligible = &verdict
	}

	logger.Info(ctx, "EligibilityCheckService standard - member: %v limit: %v multiplier: %v", member.ID.Hex(), limit, multiplier)

	response := common.SerializeEligibilityCheckResponse(member.ID.Hex(), req.Type, eligible, &limit, nil, &savings, &multiplier, http.StatusText(http.StatusOK), strconv.Itoa(http.StatusOK))
	return &response, nil
}

func (h *EligibilityCheckService) freeLoanEligibility(member *models.Member, req models.EligibilityCheckRequest, now time.Time) (*models.EligibilityCheckResponse, error) {

	tempBalance := temporaryBalance(member)
	elig := loan.FreeLoanEligibility(tempBalance, req.Amount, req.Duration, now)

	var eligible *bool
	if req.Amount > 0 && req.Duration > 0 {
		verdict := req.Amount <= elig.LoanLimit && req.Duration <= elig.LoanPeriodLimit
		eligible = &verdict
	}

	var loanLimit *float64
	if req.Duration > 0 {
		loanLimit = &elig.LoanLimit
	}
	var periodLimit *int
	if req.Amount > 0 {
		periodLimit = &elig.LoanPeriodLimit
	}

	savings := member.TemporaryInvestment.Amount

	response := common.SerializeEligibilityCheckResponse(member.ID.Hex(), req.Type, eligible, loanLimit, periodLimit, &savings, nil, http.StatusText(http.StatusOK), strconv.Itoa(http.StatusOK))
	return &response, nil
}
