package sampledata

// Category is a shop section shown in the bot's catalog menu.
type Category struct {
	Name  string
	Emoji string
}

// Product is a sample item. Prices are in cents.
type Product struct {
	Category    string
	Name        string
	Description string
	PriceCents  int64
	Stock       int
}

var SampleCategories = []Category{
	{Name: "Electronics", Emoji: "📱"},
	{Name: "Clothing", Emoji: "👕"},
	{Name: "Books", Emoji: "📚"},
	{Name: "Home & Garden", Emoji: "🏡"},
}

var SampleProducts = []Product{
	{Category: "Electronics", Name: "Wireless Earbuds", Description: "Bluetooth 5.3 earbuds with charging case", PriceCents: 4999, Stock: 50},
	{Category: "Electronics", Name: "Smartphone Stand", Description: "Adjustable aluminium desk stand", PriceCents: 1599, Stock: 120},
	{Category: "Electronics", Name: "USB-C Power Bank", Description: "10000 mAh fast-charging power bank", PriceCents: 2999, Stock: 75},
	{Category: "Clothing", Name: "Cotton T-Shirt", Description: "Unisex organic cotton tee", PriceCents: 1999, Stock: 200},
	{Category: "Clothing", Name: "Hoodie", Description: "Fleece-lined pullover hoodie", PriceCents: 3999, Stock: 80},
	{Category: "Books", Name: "The Go Programming Language", Description: "Donovan & Kernighan", PriceCents: 3499, Stock: 30},
	{Category: "Books", Name: "Telegram Bots Cookbook", Description: "Recipes for building chat commerce", PriceCents: 2499, Stock: 40},
	{Category: "Home & Garden", Name: "Ceramic Plant Pot", Description: "Hand-glazed 15 cm pot", PriceCents: 1299, Stock: 60},
	{Category: "Home & Garden", Name: "LED Desk Lamp", Description: "Dimmable lamp with USB port", PriceCents: 2799, Stock: 45},
}
