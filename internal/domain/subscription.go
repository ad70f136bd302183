package domain

// SubscriptionTier тарифный план владельца компании
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierStarter SubscriptionTier = "starter"
	TierPro     SubscriptionTier = "pro"
)

// Limits ограничения тарифа. 0 - без ограничений.
type Limits struct {
	Tier               SubscriptionTier
	MaxStaff           int
	MaxServices        int
	MaxMonthlyBookings int
}

// LimitsForTier возвращает ограничения тарифа. Неизвестный тариф считается бесплатным.
func LimitsForTier(tier SubscriptionTier) Limits {
	switch tier {
	case TierStarter:
		return Limits{Tier: TierStarter, MaxStaff: 5, MaxServices: 25, MaxMonthlyBookings: 500}
	case TierPro:
		return Limits{Tier: TierPro, MaxStaff: 25, MaxServices: 100, MaxMonthlyBookings: 0}
	default:
		return Limits{Tier: TierFree, MaxStaff: 1, MaxServices: 5, MaxMonthlyBookings: 50}
	}
}

// AllowsMonthlyBookings returns true if one more booking fits the monthly quota
func (l Limits) AllowsMonthlyBookings(alreadyBooked int) bool {
	return l.MaxMonthlyBookings == 0 || alreadyBooked < l.MaxMonthlyBookings
}
