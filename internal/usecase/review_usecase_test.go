package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type RevReviewRepoMock struct{ mock.Mock }

func (m *RevReviewRepoMock) Create(ctx context.Context, review model.Review) (model.Review, error) {
	args := m.Called(ctx, review)
	created, _ := args.Get(0).(model.Review)
	return created, args.Error(1)
}

func (m *RevReviewRepoMock) ListByProductID(ctx context.Context, productID int64) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	items, _ := args.Get(0).([]model.Review)
	return items, args.Error(1)
}

func (m *RevReviewRepoMock) FindByID(ctx context.Context, reviewID int64) (model.Review, error) {
	args := m.Called(ctx, reviewID)
	r, _ := args.Get(0).(model.Review)
	return r, args.Error(1)
}

func (m *RevReviewRepoMock) UpdateStatus(ctx context.Context, reviewID int64, status model.ReviewStatus) error {
	args := m.Called(ctx, reviewID, status)
	return args.Error(0)
}

type RevUserRepoMock struct{ mock.Mock }

func (m *RevUserRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used in ReviewUsecase tests")
}

func (m *RevUserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *RevUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	panic("not used in ReviewUsecase tests")
}

func (m *RevUserRepoMock) List(ctx context.Context) ([]model.User, error) {
	panic("not used in ReviewUsecase tests")
}

func (m *RevUserRepoMock) UpdateRole(ctx context.Context, userID int64, role model.Role) error {
	panic("not used in ReviewUsecase tests")
}

type RevProductRepoMock struct{ mock.Mock }

func (m *RevProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	panic("not used in ReviewUsecase tests")
}

func (m *RevProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *RevProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("not used in ReviewUsecase tests")
}

func (m *RevProductRepoMock) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	panic("not used in ReviewUsecase tests")
}

func (m *RevProductRepoMock) Delete(ctx context.Context, id int64) error {
	panic("not used in ReviewUsecase tests")
}

type RevAuditRepoMock struct{ mock.Mock }

func (m *RevAuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func newReviewUC(r *RevReviewRepoMock, u *RevUserRepoMock, p *RevProductRepoMock, a *RevAuditRepoMock) *usecase.ReviewUsecase {
	return usecase.NewReviewUsecase(r, u, p, a, zap.NewNop())
}

func intPtr(v int) *int { return &v }

// =====================
// CreateReview
// =====================

func TestReviewUsecase_CreateReview_RatingRequired(t *testing.T) {
	uc := newReviewUC(new(RevReviewRepoMock), new(RevUserRepoMock), new(RevProductRepoMock), new(RevAuditRepoMock))

	_, err := uc.CreateReview(context.Background(), 1, usecase.CreateReviewInput{UserID: 1})
	assertErrContains(t, err, "rating is required")
}

func TestReviewUsecase_CreateReview_RatingOutOfRange(t *testing.T) {
	uc := newReviewUC(new(RevReviewRepoMock), new(RevUserRepoMock), new(RevProductRepoMock), new(RevAuditRepoMock))

	_, err := uc.CreateReview(context.Background(), 1, usecase.CreateReviewInput{UserID: 1, Rating: intPtr(0)})
	assertErrContains(t, err, "between 1 and 5")

	_, err = uc.CreateReview(context.Background(), 1, usecase.CreateReviewInput{UserID: 1, Rating: intPtr(6)})
	assertErrContains(t, err, "between 1 and 5")
}

func TestReviewUsecase_CreateReview_UserNotFound(t *testing.T) {
	ctx := context.Background()

	uRepo := new(RevUserRepoMock)
	uc := newReviewUC(new(RevReviewRepoMock), uRepo, new(RevProductRepoMock), new(RevAuditRepoMock))

	uRepo.On("FindByID", mock.Anything, int64(99)).Return(nil, repo.ErrUserNotFound)

	_, err := uc.CreateReview(ctx, 1, usecase.CreateReviewInput{UserID: 99, Rating: intPtr(5)})
	assertErrContains(t, err, "user not found")
}

func TestReviewUsecase_CreateReview_ProductNotFound(t *testing.T) {
	ctx := context.Background()

	uRepo := new(RevUserRepoMock)
	pRepo := new(RevProductRepoMock)
	uc := newReviewUC(new(RevReviewRepoMock), uRepo, pRepo, new(RevAuditRepoMock))

	uRepo.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1}, nil)
	pRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.CreateReview(ctx, 99, usecase.CreateReviewInput{UserID: 1, Rating: intPtr(5)})
	assertErrContains(t, err, "product not found")
}

func TestReviewUsecase_CreateReview_Success_StartsPending(t *testing.T) {
	ctx := context.Background()

	rRepo := new(RevReviewRepoMock)
	uRepo := new(RevUserRepoMock)
	pRepo := new(RevProductRepoMock)
	uc := newReviewUC(rRepo, uRepo, pRepo, new(RevAuditRepoMock))

	uRepo.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1}, nil)
	pRepo.On("FindByID", mock.Anything, int64(3)).Return(model.Product{ID: 3}, nil)
	rRepo.On("Create", mock.Anything, mock.MatchedBy(func(r model.Review) bool {
		return r.ProductID == 3 && r.UserID == 1 && r.Rating == 5 && r.Status == model.ReviewStatusPending
	})).Return(model.Review{ID: 10}, nil)

	id, err := uc.CreateReview(ctx, 3, usecase.CreateReviewInput{
		UserID:     1,
		Rating:     intPtr(5),
		ReviewText: "These running shoes are super comfortable!",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(10), id)

	rRepo.AssertExpectations(t)
}

// =====================
// ModerateReview
// =====================

func TestReviewUsecase_ModerateReview_InvalidStatus(t *testing.T) {
	uc := newReviewUC(new(RevReviewRepoMock), new(RevUserRepoMock), new(RevProductRepoMock), new(RevAuditRepoMock))

	err := uc.ModerateReview(context.Background(), 1, 10, model.ReviewStatusPending)
	assertErrContains(t, err, "invalid status")
}

func TestReviewUsecase_ModerateReview_NotFound(t *testing.T) {
	ctx := context.Background()

	rRepo := new(RevReviewRepoMock)
	uc := newReviewUC(rRepo, new(RevUserRepoMock), new(RevProductRepoMock), new(RevAuditRepoMock))

	rRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Review{}, repo.ErrNotFound)

	err := uc.ModerateReview(ctx, 1, 99, model.ReviewStatusApproved)
	assertErrContains(t, err, "review not found")
}

func TestReviewUsecase_ModerateReview_SameStatusIsNoop(t *testing.T) {
	ctx := context.Background()

	rRepo := new(RevReviewRepoMock)
	uc := newReviewUC(rRepo, new(RevUserRepoMock), new(RevProductRepoMock), new(RevAuditRepoMock))

	rRepo.On("FindByID", mock.Anything, int64(10)).
		Return(model.Review{ID: 10, Status: model.ReviewStatusApproved}, nil)

	//同じstatusを再適用しても成功し、UPDATEは走らない
	err := uc.ModerateReview(ctx, 1, 10, model.ReviewStatusApproved)
	assert.NoError(t, err)

	rRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewUsecase_ModerateReview_Success_WritesAudit(t *testing.T) {
	ctx := context.Background()

	rRepo := new(RevReviewRepoMock)
	aRepo := new(RevAuditRepoMock)
	uc := newReviewUC(rRepo, new(RevUserRepoMock), new(RevProductRepoMock), aRepo)

	rRepo.On("FindByID", mock.Anything, int64(10)).
		Return(model.Review{ID: 10, Status: model.ReviewStatusPending}, nil)
	rRepo.On("UpdateStatus", mock.Anything, int64(10), model.ReviewStatusApproved).Return(nil)
	aRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionModerateReview &&
			l.ResourceType == model.AuditResourceReview &&
			l.ResourceID == 10
	})).Return(nil)

	err := uc.ModerateReview(ctx, 1, 10, model.ReviewStatusApproved)
	assert.NoError(t, err)

	rRepo.AssertExpectations(t)
	aRepo.AssertExpectations(t)
}
