package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/storage/budget"
	"github.com/carson-networks/budget-tracker/internal/storage/category"
	"github.com/carson-networks/budget-tracker/internal/storage/notification"
)

const (
	OverallBudgetExceededTitle  = "Overall Budget Exceeded"
	CategoryBudgetExceededTitle = "Category Budget Exceeded"
)

type CheckStatus int

const (
	// CheckNoBudget means no budget is configured for the transaction's month.
	CheckNoBudget CheckStatus = iota
	// CheckNoCrossing means the transaction did not push any limit over.
	CheckNoCrossing
	// CheckNotified means at least one notification was stored.
	CheckNotified
	// CheckFailed means the check stopped on an internal error, which was logged.
	CheckFailed
)

func (s CheckStatus) String() string {
	switch s {
	case CheckNoBudget:
		return "no_budget"
	case CheckNoCrossing:
		return "no_crossing"
	case CheckNotified:
		return "notified"
	case CheckFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CheckResult is the outcome of CheckBudgetExceeded. Err is only set when
// Status is CheckFailed.
type CheckResult struct {
	Status        CheckStatus
	Notifications []*notification.Notification
	Err           error
}

// BudgetNotifier emits a notification when a single transaction moves the
// month's spend from at or under a limit to over it.
type BudgetNotifier struct {
	aggregator    *BudgetAggregator
	categories    category.Finder
	notifications NotificationStore
	publisher     NotificationPublisher
	now           func() time.Time
}

// NewBudgetNotifier builds a notifier. publisher may be nil.
func NewBudgetNotifier(
	aggregator *BudgetAggregator,
	categories category.Finder,
	notifications NotificationStore,
	publisher NotificationPublisher,
) *BudgetNotifier {
	return &BudgetNotifier{
		aggregator:    aggregator,
		categories:    categories,
		notifications: notifications,
		publisher:     publisher,
		now:           time.Now,
	}
}

// CheckBudgetExceeded never fails the caller: errors are logged and reported
// through the result only. A zero transactionDate means now.
func (n *BudgetNotifier) CheckBudgetExceeded(
	ctx context.Context,
	userID uuid.UUID,
	amount decimal.Decimal,
	categoryName string,
	transactionDate time.Time,
) (result CheckResult) {
	if transactionDate.IsZero() {
		transactionDate = n.now()
	}
	month, year := PeriodOf(transactionDate)
	log := logrus.WithFields(logrus.Fields{
		"userID":   userID.String(),
		"category": categoryName,
		"month":    month,
		"year":     year,
	})

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("budget check panicked: %v", r)
			log.WithError(err).Error("BudgetNotifier.CheckBudgetExceeded.panic")
			result = CheckResult{Status: CheckFailed, Err: err}
		}
	}()

	stats, err := n.aggregator.ComputeBudgetStats(ctx, userID, month, year)
	if err != nil {
		log.WithError(err).Error("BudgetNotifier.CheckBudgetExceeded.computeStats")
		return CheckResult{Status: CheckFailed, Err: err}
	}
	if stats == nil {
		return CheckResult{Status: CheckNoBudget}
	}

	var creates []*notification.NotificationCreate

	if stats.OverallBudget.IsPositive() && crossed(stats.OverallBudget, stats.TotalSpent, amount) {
		creates = append(creates, &notification.NotificationCreate{
			UserID: userID,
			Title:  OverallBudgetExceededTitle,
			Message: fmt.Sprintf("You have exceeded your overall budget of %s. Total spent this month: %s.",
				stats.OverallBudget.StringFixed(2), stats.TotalSpent.StringFixed(2)),
			Type: notification.TypeWarning,
		})
	}

	match, found, err := n.matchCategoryLimit(ctx, userID, categoryName, stats.CategoryBudgets)
	if err != nil {
		// The overall check above still stands on its own.
		log.WithError(err).Warn("BudgetNotifier.CheckBudgetExceeded.resolveCategory")
	} else if found && match.limit.Amount.IsPositive() {
		limit, displayName := match.limit, match.name
		spent := categorySpent(stats.CategorySpent, match.spentKey, match.id)
		if crossed(limit.Amount, spent, amount) {
			creates = append(creates, &notification.NotificationCreate{
				UserID: userID,
				Title:  CategoryBudgetExceededTitle,
				Message: fmt.Sprintf("You have exceeded your budget for %s. Limit: %s, spent: %s.",
					displayName, limit.Amount.StringFixed(2), spent.StringFixed(2)),
				Type: notification.TypeBudget,
			})
		}
	}

	if len(creates) == 0 {
		return CheckResult{Status: CheckNoCrossing}
	}

	created, err := n.notifications.InsertMany(ctx, creates)
	if err != nil {
		log.WithError(err).Error("BudgetNotifier.CheckBudgetExceeded.insertNotifications")
		return CheckResult{Status: CheckFailed, Err: err}
	}
	log.WithField("notificationCount", len(created)).Info("BudgetNotifier.CheckBudgetExceeded.notified")

	if n.publisher != nil {
		if err := n.publisher.PublishNotifications(ctx, created); err != nil {
			log.WithError(err).Warn("BudgetNotifier.CheckBudgetExceeded.publish")
		}
	}

	return CheckResult{Status: CheckNotified, Notifications: created}
}

// crossed reports whether adding amount moved spent from at or under limit
// to over it.
func crossed(limit, spent, amount decimal.Decimal) bool {
	return spent.GreaterThan(limit) && spent.Sub(amount).LessThanOrEqual(limit)
}

// categoryMatch is the limit that applies to a transaction's category and
// the keys its spend is recorded under.
type categoryMatch struct {
	limit    budget.CategoryLimit
	name     string
	spentKey string
	id       uuid.UUID
}

// matchCategoryLimit finds the limit for the transaction's category. Both the
// transaction category and each stored limit may be an ID or a name; IDs are
// resolved to names before comparing.
func (n *BudgetNotifier) matchCategoryLimit(
	ctx context.Context,
	userID uuid.UUID,
	categoryName string,
	limits budget.CategoryLimits,
) (categoryMatch, bool, error) {
	if len(limits) == 0 || categoryName == "" {
		return categoryMatch{}, false, nil
	}

	txRef := category.ParseRef(categoryName)
	txName, txResolved, err := category.ResolveName(ctx, n.categories, userID, txRef)
	if err != nil {
		return categoryMatch{}, false, err
	}
	match := categoryMatch{name: categoryName, spentKey: categoryName}
	if txResolved {
		match.name = txName
		match.spentKey = txName
	}
	txID, txIsID := txRef.ID()
	if txIsID {
		match.id = txID
	}

	for _, limit := range limits {
		ref := category.ParseRef(limit.Category)
		id, limitIsID := ref.ID()

		matched := limit.Category == categoryName || (limitIsID && txIsID && id == txID)
		if !matched && txResolved {
			name, ok, err := category.ResolveName(ctx, n.categories, userID, ref)
			if err != nil {
				return categoryMatch{}, false, err
			}
			matched = ok && name == txName
		}
		if !matched {
			continue
		}

		match.limit = limit
		if match.id == uuid.Nil && limitIsID {
			match.id = id
		}
		if match.id == uuid.Nil && txResolved {
			// Both sides are names; the entity may still have ID keyed spend.
			found, err := n.categories.FindByName(ctx, userID, txName)
			if err != nil {
				return categoryMatch{}, false, err
			}
			if found != nil {
				match.id = found.ID
			}
		}
		return match, true, nil
	}
	return categoryMatch{}, false, nil
}
