package models

// SeedInsights はリポジトリの初期データを返します。
// スナップショットファイルが存在しない初回起動時にのみ使用されます。
// 呼び出しごとに新しいスライスを返すため、呼び出し側が自由に変更できます。
func SeedInsights() []InsightRecord {
	return []InsightRecord{
		{
			ID:       "nursing-home",
			Title:    "Healthcare & Nursing Homes",
			Insight1: "Labor: Focus on IDDSI-compliant pre-thickened liquids and pre-sliced proteins to save 2+ prep hours daily.",
			Insight2: "Profit: Suggest tray-card automation to reduce waste from 'missed' dietary requirements and eliminate over-serving.",
			Tip:      "They win when they lower 'Cost-Per-Patient-Day' without sacrificing nutrition. Sell the 'fixed cost per plate'.",
			Kind:     KindAccount,
			Phone:    "555-1001",
		},
		{
			ID:       "hotel",
			Title:    "Hotels & Resorts",
			Insight1: "Menu: Replace low-margin room service items with 'Grab & Go' high-profit snacks and gourmet pastries.",
			Insight2: "Bar Mix: Suggest premium par-baked appetizers to drive beverage sales without extra FOH labor.",
			Tip:      "Hotels struggle with 24/7 labor and consistency across shifts; sell products that require zero skill to plate.",
			Kind:     KindAccount,
			Phone:    "555-1002",
		},
		{
			ID:       "food-truck",
			Title:    "Food Trucks & Mobile Catering",
			Insight1: "Space: Focus on versatile SKUs where one item is used in 5+ dishes to minimize inventory footprint.",
			Insight2: "Yield: Switch to pre-cut produce to eliminate prep-waste in tiny kitchens and maximize service speed.",
			Tip:      "Square footage is the bottleneck. Sell high-yield, small-footprint items that prep in seconds.",
			Kind:     KindAccount,
			Phone:    "555-1003",
		},
		{
			ID:       "school",
			Title:    "K-12 Education / Schools",
			Insight1: "Focus: USDA commodity tracking and 'Smart Snack' compliant items for easy federal reimbursement.",
			Insight2: "Labor: Suggest easy-to-serve finger foods to increase student participation rates during short lunch periods.",
			Tip:      "Federal reimbursement compliance is their #1 priority. If it's not compliant, it's not a sale.",
			Kind:     KindAccount,
			Phone:    "555-1005",
		},
		{
			ID:       "university",
			Title:    "College & University Dining",
			Insight1: "Trend: Plant-forward menu options and 'Ghost Kitchen' delivery concepts to appeal to Gen-Z students.",
			Insight2: "Sourcing: Bulk sustainable sourcing (local/organic) drives meal-plan retention and student satisfaction.",
			Tip:      "Sustainability and global flavors drive the contract. Sell the 'story' behind the product.",
			Kind:     KindAccount,
			Phone:    "555-1006",
		},
		{
			ID:       "restaurant",
			Title:    "Independent Restaurant",
			Insight1: "Profit: 60% of menus are underpriced. Audit the 'Stars' (High Profit/High Popularity) using menu engineering.",
			Insight2: "Labor: Replace BOH vegetable prep and butchery with 'Value-Added' pre-cut produce and pre-portioned protein cuts.",
			Tip:      "Don't talk about case price; talk about 'Plate Cost' and 'Contribution Margin'. The profit is in the yield.",
			Kind:     KindAccount,
			Phone:    "555-1004",
		},
		{
			ID:       "meat",
			Title:    "Center of Plate (Protein)",
			Insight1: "The Hook: 'Are you paying staff to trim fat you've already paid for? What is your actual yield?'",
			Insight2: "The Pitch: Processor-ready steaks ensure 100% yield and exact plate-costing while saving 2 hours of expert labor.",
			Tip:      "The protein is the anchor. If you control the protein, you control the invoice. Focus on yield.",
			Kind:     KindCategory,
		},
		{
			ID:       "appetizers",
			Title:    "Appetizers & Bar Mix",
			Insight1: "The Hook: 'Which item on your bar menu has the highest contribution margin? Is staff suggesting a second round?'",
			Insight2: "The Pitch: Salty, savory appetizers drive 'second-round' beverage orders by 15%. A $9 app should cost you $1.50.",
			Tip:      "Apps are the most profitable part of the menu. Every table needs an 'opener'.",
			Kind:     KindCategory,
		},
		{
			ID:       "private-label",
			Title:    "Exclusive/Private Brands",
			Insight1: "The Hook: 'Why pay for a national brand's marketing budget when the quality spec is identical?'",
			Insight2: "The Pitch: Our Exclusive Brands offer 'National Brand Equivalent' quality with a better margin for your bottom line.",
			Tip:      "Private label is your shield against 'Price Shopping'. It's a product they can only get from YOU.",
			Kind:     KindCategory,
		},
		{
			ID:       "chemicals",
			Title:    "Kitchen & Bar Sanitation",
			Insight1: "The Hook: 'Is a dirty glass or spotted fork costing you 5-star reviews and brand reputation?'",
			Insight2: "The Pitch: Automated dispensing ensures zero waste and perfect sanitation every cycle. Protect your reputation.",
			Tip:      "Service is the product here. If their machine is down, their business is down. Sell the peace of mind.",
			Kind:     KindCategory,
		},
	}
}

// FieldPresets は検索フォームに表示するクイック検索ラベルです。
var FieldPresets = []string{"Healthcare", "Independent", "Hotel", "Food Truck", "Catering", "School"}
