package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bizdesk/config"
	"bizdesk/infras/otel/mocks"
	customerMocks "bizdesk/internal/domains/customer/mocks"
	"bizdesk/internal/domains/customer/model"
	"bizdesk/internal/domains/customer/model/dto"
	"bizdesk/internal/domains/customer/service"
	cacheMocks "bizdesk/shared/cache/mocks"
	"bizdesk/shared/constant"
	gDto "bizdesk/shared/dto"
	gModel "bizdesk/shared/model"
	"bizdesk/shared/timezone"
)

func strPtr(s string) *string {
	return &s
}

func TestCustomerService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.CreateCustomerRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreateCustomerRequest{
				Name:  "Jane Smith",
				Email: strPtr("jane@example.com"),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "repository error",
			req: dto.CreateCustomerRequest{
				Name:  "Jane Smith",
				Email: strPtr("jane@example.com"),
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")

			err := svc.Create(ctx, tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCustomerService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	now := timezone.Now()
	stored := model.Customer{
		ID:    "customer-1",
		Name:  "Jane Smith",
		Email: strPtr("jane@example.com"),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}

	t.Run("found", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)

		res, err := svc.Get(context.Background(), "customer-1")

		assert.NoError(t, err)
		assert.Equal(t, stored.ID, res.ID)
		assert.Equal(t, stored.Name, res.Name)
		assert.Equal(t, stored.Email, res.Email)
	})

	t.Run("not found", func(t *testing.T) {
		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Customer{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.Error(t, err)
	})
}

func TestCustomerService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	req := gDto.QueryParams{Page: 1, Limit: 10}
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: []any{}}

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockRepo.EXPECT().Count(gomock.Any(), filter).Return(2, nil)
	mockRepo.EXPECT().GetAll(gomock.Any(), req, filter).Return([]model.Customer{
		{ID: "customer-1", Name: "Jane Smith"},
		{ID: "customer-2", Name: "John Doe"},
	}, nil)

	res, err := svc.GetAll(context.Background(), req, filter)

	assert.NoError(t, err)
	assert.Len(t, res.Customers, 2)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
}

func TestCustomerService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	req := dto.UpdateCustomerRequest{Name: "Jane Updated"}

	t.Run("successful update", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")

		assert.NoError(t, svc.Update(ctx, req, "customer-1"))
	})

	t.Run("customer missing", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user")

		assert.Error(t, svc.Update(ctx, req, "missing"))
	})
}

func TestCustomerService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := customerMocks.NewMockCustomer(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	t.Run("successful delete", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), "customer-1"))
	})

	t.Run("customer missing", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		assert.Error(t, svc.Delete(context.Background(), "missing"))
	})
}
