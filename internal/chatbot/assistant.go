package chatbot

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"goplanner/internal/domain/helper"
	"goplanner/internal/domain/model"
	"goplanner/internal/domain/repository"
)

const defaultChatDays = 3

const defaultReply = "I'm here to help with your travel planning! I can assist with:\n\n" +
	"• Creating itineraries\n" +
	"• Destination suggestions\n" +
	"• Budget planning\n" +
	"• Weather insights\n" +
	"• Packing lists\n" +
	"• Attractions and routes\n\n" +
	"What would you like to know?"

// Assistant は旅行計画チャットボット
type Assistant interface {
	Reply(ctx context.Context, req *model.ChatRequest) *model.ChatResponse
}

type assistant struct {
	knowledge *Knowledge
	// nil の場合は定型文のみで応答する
	generator repository.TextGenerationRepository
}

// NewAssistant は知識ベースと任意の文章生成器からAssistantを作成する
func NewAssistant(knowledge *Knowledge, generator repository.TextGenerationRepository) Assistant {
	return &assistant{knowledge: knowledge, generator: generator}
}

// Reply はメッセージと会話コンテキストから応答を組み立てる
func (a *assistant) Reply(ctx context.Context, req *model.ChatRequest) *model.ChatResponse {
	message := req.Message
	prev := req.Context

	intent := DetectIntent(message)
	destination := a.knowledge.ExtractDestination(message)
	if destination == "" {
		destination = prev.Destination
	}
	budgetRange := ExtractBudgetRange(message)
	if budgetRange == "" {
		budgetRange = BudgetRange(prev.BudgetRange)
	}
	if budgetRange == "" {
		budgetRange = BudgetRangeMid
	}

	next := prev
	next.Destination = destination
	next.BudgetRange = string(budgetRange)
	next.LastIntent = intent
	next.LastMessage = message

	dest, known := a.knowledge.Destinations[destination]
	days := prev.Days
	if days <= 0 {
		days = defaultChatDays
	}

	resp := &model.ChatResponse{QuickReplies: []string{}}

	switch intent {
	case model.IntentGreeting:
		resp.Response = "Hi! 👋 I'm your travel planning assistant. I can help you with:\n\n" +
			"✨ Creating day-by-day itineraries\n" +
			"🌍 Suggesting destinations based on your preferences\n" +
			"💰 Budget estimates and cost breakdowns\n" +
			"🌤️ Weather insights and best time to visit\n" +
			"🎒 Packing lists and outfit recommendations\n" +
			"🏛️ Popular attractions and hidden gems\n" +
			"🗺️ Route optimization between places\n" +
			"❓ Travel FAQs and tips\n\n" +
			"What would you like to plan today?"
		resp.QuickReplies = []string{"Plan a trip", "Suggest destination", "Budget estimate", "Weather info"}

	case model.IntentDestination:
		if known {
			resp.Response = fmt.Sprintf("Great choice! %s is an amazing destination. Here's what you should know:\n\n", dest.Name) +
				fmt.Sprintf("🌤️ **Weather**: %s\n", dest.Weather) +
				fmt.Sprintf("📅 **Best Time**: %s\n", dest.BestTime) +
				"💰 **Budget Range**:\n" +
				fmt.Sprintf("   • Budget: %s\n", rupees(dest.Budget[BudgetRangeLow])) +
				fmt.Sprintf("   • Mid-range: %s\n", rupees(dest.Budget[BudgetRangeMid])) +
				fmt.Sprintf("   • Luxury: %s\n\n", rupees(dest.Budget[BudgetRangeHigh])) +
				fmt.Sprintf("Would you like me to create a detailed itinerary for %s?", dest.Name)
			resp.QuickReplies = []string{"Create itinerary", "Attractions", "Packing list", "Weather details"}
		} else {
			resp.Response = "I'd love to suggest a destination! Could you tell me:\n\n" +
				"• Your budget range (low/mid/high)\n" +
				"• Preferred travel style (beach/mountain/city/culture)\n" +
				"• Time of year you're planning to travel\n" +
				"• Number of days\n\n" +
				"Or just tell me a destination you're interested in!"
			resp.QuickReplies = a.knowledge.DestinationNames()
		}

	case model.IntentItinerary:
		if known {
			plan := a.knowledge.CannedItinerary(destination, days)
			var b strings.Builder
			fmt.Fprintf(&b, "Here's a %d-day itinerary for %s:\n\n", days, dest.Name)
			for i, day := range plan {
				fmt.Fprintf(&b, "**Day %d**: %s\n", i+1, day.Theme)
				for _, act := range day.Activities {
					fmt.Fprintf(&b, "  • %s: %s\n", act.Time, act.Activity)
				}
				b.WriteString("\n")
			}
			b.WriteString("💡 **Tip**: This is a suggested itinerary. You can customize it based on your interests!\n\n" +
				"Would you like me to add this to your planner or make changes?")
			resp.Response = b.String()
			resp.Suggestions = &model.ChatSuggestion{Type: "itinerary", Data: plan, Destination: destination}
			resp.QuickReplies = []string{"Add to planner", "Modify itinerary", "View attractions", "Get packing list"}
		} else {
			resp.Response = "I'd be happy to create an itinerary! First, tell me:\n\n" +
				"• Which destination? (e.g., Jaipur, Ooty, Maldives, Paris)\n" +
				"• How many days?\n" +
				"• Your interests (sightseeing, adventure, relaxation, etc.)"
			resp.QuickReplies = []string{"Jaipur 3 days", "Ooty 4 days", "Maldives 5 days", "Paris 7 days"}
		}

	case model.IntentBudget:
		if known {
			budget := dest.Budget[budgetRange]
			resp.Response = fmt.Sprintf("💰 **Budget Estimate for %s (%d days, %s range)**:\n\n", dest.Name, days, budgetRange) +
				fmt.Sprintf("**Total**: %s\n", rupees(budget)) +
				fmt.Sprintf("**Per Day**: %s\n\n", rupees(share(budget, 1/float64(days)))) +
				"**Breakdown**:\n" +
				fmt.Sprintf("  • Accommodation (40%%): %s\n", rupees(share(budget, 0.4))) +
				fmt.Sprintf("  • Food & Dining (30%%): %s\n", rupees(share(budget, 0.3))) +
				fmt.Sprintf("  • Activities & Sightseeing (20%%): %s\n", rupees(share(budget, 0.2))) +
				fmt.Sprintf("  • Transport (10%%): %s\n\n", rupees(share(budget, 0.1))) +
				"💡 *Note: These are estimated costs. Actual prices may vary based on season, bookings, and personal preferences.*"
			resp.QuickReplies = []string{"Create itinerary", "Compare destinations", "Money-saving tips"}
		} else {
			resp.Response = "I can help with budget planning! Tell me:\n\n" +
				"• Your destination\n" +
				"• Budget range (low/mid/high)\n" +
				"• Number of days\n\n" +
				"I'll give you a detailed cost breakdown!"
			resp.QuickReplies = []string{"Low budget trip", "Mid-range trip", "Luxury trip"}
		}

	case model.IntentWeather:
		if known {
			var b strings.Builder
			fmt.Fprintf(&b, "🌤️ **Weather in %s**:\n\n%s\n\n", dest.Name, dest.Weather)
			fmt.Fprintf(&b, "📅 **Best Time to Visit**: %s\n\n", dest.BestTime)
			b.WriteString("💡 **Packing Tips**:\n")
			for _, tip := range dest.WeatherTips {
				fmt.Fprintf(&b, "  • %s\n", tip)
			}
			resp.Response = b.String()
			resp.QuickReplies = []string{"Packing list", "Best time to visit", "Seasonal tips"}
		} else {
			resp.Response = "I can provide weather insights! Which destination are you planning to visit?"
			resp.QuickReplies = a.knowledge.DestinationNames()
		}

	case model.IntentPacking:
		travelType := prev.TravelType
		if travelType == "" {
			travelType = detectTravelType(message)
		}
		list, ok := a.knowledge.PackingLists[travelType]
		if !ok {
			list = a.knowledge.PackingLists["city"]
		}
		var b strings.Builder
		fmt.Fprintf(&b, "🎒 **Packing List for %s Travel**:\n\n", helper.Capitalize(travelType))
		for i, item := range list {
			fmt.Fprintf(&b, "%d. %s\n", i+1, item)
		}
		b.WriteString("\n💡 **Pro Tips**:\n" +
			"  • Roll clothes to save space\n" +
			"  • Pack versatile items that can be mixed and matched\n" +
			"  • Keep important documents in a waterproof pouch\n" +
			"  • Check airline baggage restrictions\n")
		resp.Response = b.String()
		resp.QuickReplies = []string{"Beach packing", "Mountain packing", "City packing", "Desert packing"}

	case model.IntentAttractions:
		if known {
			var b strings.Builder
			fmt.Fprintf(&b, "🏛️ **Must-Visit Attractions in %s**:\n\n**Popular Spots**:\n", dest.Name)
			for i, attr := range dest.Attractions {
				fmt.Fprintf(&b, "%d. %s\n", i+1, attr)
			}
			b.WriteString("\n**Hidden Gems** (Lesser-known but amazing!):\n")
			for i, gem := range dest.HiddenGems {
				fmt.Fprintf(&b, "%d. %s\n", i+1, gem)
			}
			b.WriteString("\n💡 Want me to create an itinerary that includes these places?")
			resp.Response = b.String()
			resp.QuickReplies = []string{"Create itinerary", "Route optimization", "Best time to visit"}
		} else {
			resp.Response = "I can suggest amazing attractions! Which destination are you interested in?"
			resp.QuickReplies = a.knowledge.DestinationNames()
		}

	case model.IntentRoute:
		resp.Response = "🗺️ **Route Optimization Tips**:\n\n" +
			"For efficient route planning:\n" +
			"1. **Group nearby attractions** - Visit places in the same area on the same day\n" +
			"2. **Start early** - Begin with places that open early\n" +
			"3. **Avoid backtracking** - Plan a logical sequence\n" +
			"4. **Consider traffic** - Factor in local rush hours\n" +
			"5. **Use maps** - Google Maps or local transport apps help\n\n" +
			"Tell me your destination and I can suggest an optimized route!"
		resp.QuickReplies = []string{"Jaipur route", "Ooty route", "Paris route"}

	case model.IntentCost:
		if known {
			costDays := firstNumber(message)
			if costDays <= 0 {
				costDays = days
			}
			budget := dest.Budget[budgetRange]
			resp.Response = fmt.Sprintf("💰 **Estimated Cost for %s (%d days)**:\n\n", dest.Name, costDays) +
				fmt.Sprintf("**Total Budget**: %s\n", rupees(budget)) +
				fmt.Sprintf("**Per Person**: %s (assuming 2 people)\n", rupees(share(budget, 0.5))) +
				fmt.Sprintf("**Per Day**: %s\n\n", rupees(share(budget, 1/float64(costDays)))) +
				"*Prices are estimates and may vary based on season, booking timing, and personal choices.*"
			resp.QuickReplies = []string{"Detailed breakdown", "Money-saving tips", "Compare destinations"}
		} else {
			resp.Response = "I can estimate trip costs! Tell me:\n\n" +
				"• Destination\n" +
				"• Number of days\n" +
				"• Budget preference (low/mid/high)"
			resp.QuickReplies = []string{"3 days", "5 days", "7 days"}
		}

	case model.IntentFAQ:
		topic := detectFAQTopic(message)
		if answer, ok := a.knowledge.FAQ[topic]; ok && topic != "" {
			resp.Response = fmt.Sprintf("❓ **%s**:\n\n%s", helper.Capitalize(topic), answer)
		} else {
			resp.Response = "I can help with travel FAQs! Common topics:\n\n" +
				"• Visa requirements\n" +
				"• Travel insurance\n" +
				"• Currency exchange\n" +
				"• Safety tips\n" +
				"• Booking advice\n\n" +
				"What would you like to know?"
			resp.QuickReplies = []string{"Visa info", "Insurance", "Currency", "Safety tips"}
		}

	default:
		resp.Response = a.freeform(ctx, message)
		resp.QuickReplies = []string{"Plan a trip", "Suggest destination", "Budget help", "Weather info"}
	}

	// 日数は次のメッセージから使われる
	if n := ExtractDays(message); n > 0 {
		next.Days = n
	}
	resp.Context = next
	return resp
}

// freeform は判定できなかった質問を生成AIに任せる。失敗時は定型文
func (a *assistant) freeform(ctx context.Context, message string) string {
	if a.generator == nil {
		return defaultReply
	}
	answer, err := a.generator.AnswerTravelQuestion(ctx, message)
	if err != nil {
		log.Printf("⚠️ 生成AIでの回答に失敗したため定型文を返します: %v", err)
		return defaultReply
	}
	return answer
}

func share(total int, ratio float64) int {
	return int(math.Round(float64(total) * ratio))
}

func rupees(n int) string {
	return "₹" + helper.FormatThousands(n)
}
