package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-tracker/internal/operator/actions"
	"github.com/carson-networks/budget-tracker/internal/storage/budget"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/notification"
	"github.com/carson-networks/budget-tracker/internal/storage/transaction"
)

// memStore is an in-memory stand-in for the storage readers.
type memStore struct {
	mutex        sync.Mutex
	budgets      []*budget.Budget
	transactions []*transaction.Transaction
	categories   []*category.Category

	budgetErr      error
	transactionErr error
	categoryErr    error
}

func newMemStore() *memStore {
	return &memStore{}
}

func (m *memStore) addBudget(userID uuid.UUID, month, year int, overall string, limits ...budget.CategoryLimit) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.budgets = append(m.budgets, &budget.Budget{
		ID:              uuid.Must(uuid.NewV4()),
		UserID:          userID,
		Month:           month,
		Year:            year,
		OverallBudget:   decimal.RequireFromString(overall),
		CategoryBudgets: limits,
	})
}

func (m *memStore) addCategory(userID uuid.UUID, name string) *category.Category {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	c := &category.Category{
		ID:     uuid.Must(uuid.NewV4()),
		UserID: userID,
		Name:   name,
		Type:   string(transaction.TypeExpense),
	}
	m.categories = append(m.categories, c)
	return c
}

func (m *memStore) addTransaction(userID uuid.UUID, txType transaction.Type, categoryValue, amount string, date time.Time) *transaction.Transaction {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	tx := &transaction.Transaction{
		ID:              uuid.Must(uuid.NewV4()),
		UserID:          userID,
		Type:            txType,
		Amount:          decimal.RequireFromString(amount),
		Category:        categoryValue,
		TransactionDate: date,
		CreatedAt:       time.Now(),
	}
	m.transactions = append(m.transactions, tx)
	return tx
}

func (m *memStore) budgetStore() BudgetStore           { return memBudgets{m} }
func (m *memStore) transactionStore() TransactionStore { return memTransactions{m} }
func (m *memStore) categoryStore() CategoryStore       { return memCategories{m} }

type memBudgets struct{ *memStore }

func (m memBudgets) FindOne(_ context.Context, userID uuid.UUID, month, year int) (*budget.Budget, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.budgetErr != nil {
		return nil, m.budgetErr
	}
	for _, b := range m.budgets {
		if b.UserID == userID && b.Month == month && b.Year == year {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

type memTransactions struct{ *memStore }

func (m memTransactions) FindByID(_ context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, tx := range m.transactions {
		if tx.UserID == userID && tx.ID == id {
			return tx, nil
		}
	}
	return nil, nil
}

func (m memTransactions) Find(_ context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.transactionErr != nil {
		return nil, m.transactionErr
	}
	var result []*transaction.Transaction
	for _, tx := range m.transactions {
		if tx.UserID != filter.UserID {
			continue
		}
		if filter.Type != nil && tx.Type != *filter.Type {
			continue
		}
		if filter.DateFrom != nil && tx.TransactionDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && !tx.TransactionDate.Before(*filter.DateTo) {
			continue
		}
		result = append(result, tx)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type memCategories struct{ *memStore }

func (m memCategories) FindByID(_ context.Context, userID, id uuid.UUID) (*category.Category, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.categoryErr != nil {
		return nil, m.categoryErr
	}
	for _, c := range m.categories {
		if c.UserID == userID && c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m memCategories) FindByName(_ context.Context, userID uuid.UUID, name string) (*category.Category, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.categoryErr != nil {
		return nil, m.categoryErr
	}
	for _, c := range m.categories {
		if c.UserID == userID && c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (m memCategories) List(_ context.Context, userID uuid.UUID) ([]*category.Category, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.categoryErr != nil {
		return nil, m.categoryErr
	}
	var result []*category.Category
	for _, c := range m.categories {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

// memNotifications records inserted notifications.
type memNotifications struct {
	mutex   sync.Mutex
	created []*notification.Notification
	err     error
	panics  bool
}

func (m *memNotifications) InsertMany(_ context.Context, creates []*notification.NotificationCreate) ([]*notification.Notification, error) {
	if m.panics {
		panic("notification store exploded")
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	result := make([]*notification.Notification, len(creates))
	for i, c := range creates {
		result[i] = &notification.Notification{
			ID:        uuid.Must(uuid.NewV4()),
			UserID:    c.UserID,
			Title:     c.Title,
			Message:   c.Message,
			Type:      c.Type,
			CreatedAt: time.Now(),
		}
	}
	m.created = append(m.created, result...)
	return result, nil
}

func (m *memNotifications) titles() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	titles := make([]string, len(m.created))
	for i, n := range m.created {
		titles[i] = n.Title
	}
	return titles
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishNotifications(ctx context.Context, notifications []*notification.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

var errStoreDown = errors.New("store unavailable")
