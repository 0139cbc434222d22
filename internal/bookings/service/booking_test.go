package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "tablebook/internal/bookings/errors"
	"tablebook/internal/bookings/repository"
	"tablebook/internal/bookings/validator"
	"tablebook/pkg/config"
	mongotx "tablebook/pkg/db/mongo"
	apperrors "tablebook/pkg/errors"
	"tablebook/pkg/logger"
	"tablebook/pkg/model"
)

type mockRepository struct {
	CreateFunc     func(ctx context.Context, booking *model.Booking) error
	FindAllFunc    func(ctx context.Context) ([]*model.Booking, error)
	FindBySlotFunc func(ctx context.Context, date, timeSlot string) (*model.Booking, error)
	DeleteFunc     func(ctx context.Context, id string) error
	CountFunc      func(ctx context.Context) (int64, error)

	createCalls int
}

func (m *mockRepository) Create(ctx context.Context, booking *model.Booking) error {
	m.createCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, booking)
	}
	booking.ID = "64f000000000000000000001"
	return nil
}

func (m *mockRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockRepository) FindBySlot(ctx context.Context, date, timeSlot string) (*model.Booking, error) {
	if m.FindBySlotFunc != nil {
		return m.FindBySlotFunc(ctx, date, timeSlot)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *mockRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (m *mockRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

var _ repository.BookingRepository = (*mockRepository)(nil)

type mockPublisher struct {
	CreatedFunc func(ctx context.Context, booking *model.Booking) error
	DeletedFunc func(ctx context.Context, booking *model.Booking) error

	createdCalls int
	deletedCalls int
}

func (m *mockPublisher) BookingCreated(ctx context.Context, booking *model.Booking) error {
	m.createdCalls++
	if m.CreatedFunc != nil {
		return m.CreatedFunc(ctx, booking)
	}
	return nil
}

func (m *mockPublisher) BookingDeleted(ctx context.Context, booking *model.Booking) error {
	m.deletedCalls++
	if m.DeletedFunc != nil {
		return m.DeletedFunc(ctx, booking)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Output: io.Discard})
}

func newTestService(repo *mockRepository, pub *mockPublisher) BookingService {
	v := validator.NewBookingValidator(config.SlotSchemaDateTime, testLogger())
	var publisher EventPublisher
	if pub != nil {
		publisher = pub
	}
	return NewBookingService(repo, v, publisher, testLogger())
}

func validBooking() *model.Booking {
	return &model.Booking{
		Name:    "Ada Lovelace",
		Contact: "5551234567",
		Guests:  4,
		Date:    "2026-10-01T19:00:00Z",
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &mockRepository{}
	pub := &mockPublisher{}
	svc := newTestService(repo, pub)

	created, err := svc.Create(context.Background(), validBooking())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Error("expected created booking to carry the store-assigned ID")
	}
	if repo.createCalls != 1 {
		t.Errorf("expected 1 insert, got %d", repo.createCalls)
	}
	if pub.createdCalls != 1 {
		t.Errorf("expected 1 created event, got %d", pub.createdCalls)
	}
}

func TestCreate_SlotTaken(t *testing.T) {
	repo := &mockRepository{
		FindBySlotFunc: func(ctx context.Context, date, timeSlot string) (*model.Booking, error) {
			return &model.Booking{ID: "64f000000000000000000002", Date: date}, nil
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(repo, pub)

	_, err := svc.Create(context.Background(), validBooking())
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if appErr.StatusCode() != 400 {
		t.Errorf("expected status 400, got %d", appErr.StatusCode())
	}
	if repo.createCalls != 0 {
		t.Errorf("conflicting create must not insert, got %d inserts", repo.createCalls)
	}
	if pub.createdCalls != 0 {
		t.Errorf("conflicting create must not publish, got %d events", pub.createdCalls)
	}
}

func TestCreate_DuplicateKeyRace(t *testing.T) {
	// The pre-insert check passes but the unique index rejects the insert.
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, booking *model.Booking) error {
			return bookingserrors.ErrSlotTaken
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	_, err := svc.Create(context.Background(), validBooking())
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(repo, &mockPublisher{})

	booking := validBooking()
	booking.Contact = "123"

	_, err := svc.Create(context.Background(), booking)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Errorf("invalid booking must not reach the store, got %d inserts", repo.createCalls)
	}
}

func TestCreate_SanitizesInput(t *testing.T) {
	var inserted *model.Booking
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, booking *model.Booking) error {
			inserted = booking
			booking.ID = "64f000000000000000000003"
			return nil
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	booking := validBooking()
	booking.Name = "  Ada   Lovelace "
	booking.Contact = "(555) 123-4567"

	if _, err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if inserted.Name != "Ada Lovelace" {
		t.Errorf("expected normalized name, got %q", inserted.Name)
	}
	if inserted.Contact != "5551234567" {
		t.Errorf("expected normalized contact, got %q", inserted.Contact)
	}
}

func TestCreate_PublishFailureIsNonFatal(t *testing.T) {
	repo := &mockRepository{}
	pub := &mockPublisher{
		CreatedFunc: func(ctx context.Context, booking *model.Booking) error {
			return errors.New("broker unreachable")
		},
	}
	svc := newTestService(repo, pub)

	if _, err := svc.Create(context.Background(), validBooking()); err != nil {
		t.Fatalf("publish failure must not fail the create, got %v", err)
	}
}

func TestCreate_StoreFailure(t *testing.T) {
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, booking *model.Booking) error {
			return errors.New("connection reset")
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	_, err := svc.Create(context.Background(), validBooking())
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.StatusCode() != 500 {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestList_ReturnsAll(t *testing.T) {
	want := []*model.Booking{
		{ID: "64f000000000000000000001", Name: "Ada", Date: "2026-10-01T19:00:00Z"},
		{ID: "64f000000000000000000002", Name: "Grace", Date: "2026-10-02T19:00:00Z"},
	}
	repo := &mockRepository{
		FindAllFunc: func(ctx context.Context) ([]*model.Booking, error) {
			return want, nil
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d bookings, got %d", len(want), len(got))
	}
}

func TestList_EmptyStoreYieldsEmptySlice(t *testing.T) {
	svc := newTestService(&mockRepository{}, &mockPublisher{})

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no bookings, got %d", len(got))
	}
}

func TestList_StoreFailure(t *testing.T) {
	repo := &mockRepository{
		FindAllFunc: func(ctx context.Context) ([]*model.Booking, error) {
			return nil, errors.New("cursor timeout")
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	_, err := svc.List(context.Background())
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.StatusCode() != 500 {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	pub := &mockPublisher{}
	svc := newTestService(&mockRepository{}, pub)

	if err := svc.Delete(context.Background(), "64f000000000000000000001"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if pub.deletedCalls != 1 {
		t.Errorf("expected 1 deleted event, got %d", pub.deletedCalls)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockRepository{
		DeleteFunc: func(ctx context.Context, id string) error {
			return bookingserrors.ErrNotFound
		},
	}
	pub := &mockPublisher{}
	svc := newTestService(repo, pub)

	err := svc.Delete(context.Background(), "64f0000000000000000000ff")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.StatusCode() != 404 {
		t.Fatalf("expected not found error, got %v", err)
	}
	if pub.deletedCalls != 0 {
		t.Errorf("failed delete must not publish, got %d events", pub.deletedCalls)
	}
}

func TestDelete_InvalidID(t *testing.T) {
	repo := &mockRepository{
		DeleteFunc: func(ctx context.Context, id string) error {
			return bookingserrors.ErrInvalidID
		},
	}
	svc := newTestService(repo, &mockPublisher{})

	err := svc.Delete(context.Background(), "not-an-object-id")
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.StatusCode() != 400 {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestDelete_NilPublisher(t *testing.T) {
	svc := newTestService(&mockRepository{}, nil)

	if err := svc.Delete(context.Background(), "64f000000000000000000001"); err != nil {
		t.Fatalf("Delete with nil publisher returned error: %v", err)
	}
}
