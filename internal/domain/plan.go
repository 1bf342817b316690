package domain

import (
	"math"
)

// Unlimited — сентинель «без ограничений»
// Используем максимальный int64 вместо бесконечности, чтобы арифметика оставалась точной
const Unlimited int64 = math.MaxInt64

// PlanLimits — числовые лимиты тарифного плана
type PlanLimits struct {
	MaxDomains        int64 // Макс. количество доменов
	MaxMailboxes      int64 // Макс. количество ящиков
	MaxSentEmails     int64 // Макс. отправленных писем на ящик
	MaxReceivedEmails int64 // Макс. полученных писем на ящик
	AllowedStorageMB  int64 // Потолок хранилища в мегабайтах
}

// planTable — канонические лимиты по тарифам (месячный цикл)
var planTable = map[Plan]PlanLimits{
	PlanFree: {
		MaxDomains:        1,
		MaxMailboxes:      1,
		MaxSentEmails:     50,
		MaxReceivedEmails: 500,
		AllowedStorageMB:  1024,
	},
	PlanBasic: {
		MaxDomains:        3,
		MaxMailboxes:      10,
		MaxSentEmails:     1000,
		MaxReceivedEmails: 10000,
		AllowedStorageMB:  10240,
	},
	PlanPremium: {
		MaxDomains:        10,
		MaxMailboxes:      50,
		MaxSentEmails:     Unlimited,
		MaxReceivedEmails: Unlimited,
		AllowedStorageMB:  51200,
	},
}

// LimitsFor возвращает лимиты для тарифа с учётом периодичности оплаты
// Годовой цикл увеличивает лимиты в 1.5 раза с округлением вниз
// Неизвестный тариф трактуется как FREE
func LimitsFor(plan Plan, cycle BillingCycle) PlanLimits {
	limits, ok := planTable[plan]
	if !ok {
		limits = planTable[PlanFree]
	}
	if cycle == CycleYearly {
		limits.MaxDomains = scaleYearly(limits.MaxDomains)
		limits.MaxMailboxes = scaleYearly(limits.MaxMailboxes)
		limits.MaxSentEmails = scaleYearly(limits.MaxSentEmails)
		limits.MaxReceivedEmails = scaleYearly(limits.MaxReceivedEmails)
		limits.AllowedStorageMB = scaleYearly(limits.AllowedStorageMB)
	}
	return limits
}

// TrialLimits возвращает лимиты пробного периода (тариф FREE без масштабирования)
func TrialLimits() PlanLimits {
	return planTable[PlanFree]
}

// scaleYearly умножает лимит на 1.5 с округлением вниз
// Сентинель Unlimited не масштабируется, иначе случится переполнение
func scaleYearly(v int64) int64 {
	if v == Unlimited {
		return Unlimited
	}
	return v * 3 / 2
}
