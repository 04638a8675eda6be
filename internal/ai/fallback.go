package ai

import (
	"fmt"
	"strings"

	"ecoguardian/internal/domain"
)

// fallbackChat routes the message to a canned tip block by keyword.
// First match wins, checked in the fixed bucket order below, so a message
// mentioning both "commute" and "food" gets the transportation answer.
func fallbackChat(message string, userCtx *UserContext) string {
	lower := strings.ToLower(message)

	contains := func(keywords ...string) bool {
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				return true
			}
		}
		return false
	}

	if contains("commute", "transport") {
		return categoryTips("To reduce transportation emissions:", []string{
			"Consider carpooling or using public transit when possible",
			"Bike or walk for short trips (under 2 miles)",
			"Combine multiple errands into one trip",
			"Maintain proper tire pressure to improve fuel efficiency",
			"Consider a hybrid or electric vehicle for your next car",
		}, userCtx, domain.CategoryTransportation, "Your current transportation footprint is %.1f kg CO₂.")
	}

	if contains("energy", "electricity") {
		return categoryTips("To reduce energy consumption:", []string{
			"Switch to LED bulbs (75% less energy)",
			"Unplug devices when not in use",
			"Use a programmable thermostat",
			"Seal air leaks around windows and doors",
			"Consider renewable energy options like solar panels",
		}, userCtx, domain.CategoryEnergy, "Your current energy footprint is %.1f kg CO₂.")
	}

	if contains("food", "eating", "diet") {
		return categoryTips("For sustainable eating habits:", []string{
			"Reduce meat consumption, especially beef",
			"Buy local and seasonal produce",
			"Plan meals to minimize food waste",
			"Compost food scraps when possible",
			"Choose products with minimal packaging",
		}, userCtx, domain.CategoryFood, "Your current food-related footprint is %.1f kg CO₂.")
	}

	if contains("product", "shopping", "buy") {
		return categoryTips("For eco-friendly shopping:", []string{
			"Choose quality items that last longer",
			"Buy second-hand when possible",
			"Support companies with sustainable practices",
			"Avoid single-use plastics",
			"Repair items instead of replacing them",
		}, userCtx, domain.CategoryShopping, "Your current shopping footprint is %.1f kg CO₂.")
	}

	return generalTips(userCtx)
}

func categoryTips(header string, tips []string, userCtx *UserContext, cat domain.Category, contextFormat string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	for i, tip := range tips {
		fmt.Fprintf(&b, "%d. %s\n", i+1, tip)
	}
	b.WriteString("\n")
	if userCtx != nil {
		fmt.Fprintf(&b, contextFormat, userCtx.category(cat))
	}
	return b.String()
}

func generalTips(userCtx *UserContext) string {
	var b strings.Builder
	b.WriteString("Here are some general tips to reduce your carbon footprint:\n\n")
	b.WriteString("1. Transportation: Use public transit, carpool, or bike when possible\n")
	b.WriteString("2. Energy: Switch to LED bulbs and unplug unused devices\n")
	b.WriteString("3. Food: Reduce meat consumption and buy local produce\n")
	b.WriteString("4. Shopping: Choose sustainable products and avoid single-use items\n")
	b.WriteString("5. Habits: Reduce, reuse, recycle in that order\n")
	b.WriteString("\n")
	if userCtx != nil {
		fmt.Fprintf(&b, "Your total carbon footprint is %.1f kg CO₂ (%.1f kg this month).\n\n",
			userCtx.TotalCarbon, userCtx.MonthCarbon)
	}
	b.WriteString("I'm here to help you reduce your environmental impact!")
	return b.String()
}

// fallbackRecommendations is the static product table used when the remote
// service is out of quota. Unknown categories get the transportation list.
func fallbackRecommendations(highest domain.Category) []string {
	tables := map[domain.Category][]string{
		domain.CategoryTransportation: {
			"Reusable Water Bottle - Stay hydrated without single-use plastics during commutes (saves 15 kg CO₂/year)",
			"Bike Repair Kit - Maintain your bike for regular cycling instead of driving (saves 200 kg CO₂/year)",
			"Public Transit Pass - Monthly pass encourages sustainable commuting habits (saves 500 kg CO₂/year)",
			"Electric Scooter - Zero-emission alternative for short trips under 5 miles (saves 300 kg CO₂/year)",
			"Carpooling App Subscription - Share rides and reduce individual vehicle emissions (saves 400 kg CO₂/year)",
		},
		domain.CategoryEnergy: {
			"Smart Power Strip - Eliminate phantom energy drain from electronics (saves 50 kg CO₂/year)",
			"LED Light Bulbs - 75% more efficient than incandescent bulbs (saves 40 kg CO₂/year)",
			"Programmable Thermostat - Optimize heating/cooling schedules (saves 180 kg CO₂/year)",
			"Solar Charger - Charge devices with renewable energy (saves 25 kg CO₂/year)",
			"Insulation Weather Strips - Seal air leaks around doors and windows (saves 100 kg CO₂/year)",
		},
		domain.CategoryFood: {
			"Reusable Produce Bags - Replace plastic bags at grocery stores (saves 10 kg CO₂/year)",
			"Compost Bin - Turn food scraps into nutrient-rich soil (saves 75 kg CO₂/year)",
			"Meal Planning Journal - Reduce food waste through better planning (saves 120 kg CO₂/year)",
			"Reusable Food Containers - Replace single-use packaging for leftovers (saves 30 kg CO₂/year)",
			"Plant-Based Cookbook - Delicious recipes to reduce meat consumption (saves 250 kg CO₂/year)",
		},
		domain.CategoryShopping: {
			"Reusable Shopping Bags - Durable bags that last for years (saves 20 kg CO₂/year)",
			"Bamboo Toothbrush - Biodegradable alternative to plastic (saves 5 kg CO₂/year)",
			"Refillable Cleaning Supplies - Reduce packaging waste with concentrate refills (saves 15 kg CO₂/year)",
			"Second-Hand Shopping Guide - Find quality pre-owned items (saves 200 kg CO₂/year)",
			"Repair Kit - Fix items instead of replacing them (saves 100 kg CO₂/year)",
		},
	}

	if list, ok := tables[highest]; ok {
		return list
	}
	return tables[domain.CategoryTransportation]
}
