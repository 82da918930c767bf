package domain

import "time"

// CartItem is a menu item placed in a user's cart.
type CartItem struct {
	ID     string  `json:"_id" bson:"_id,omitempty"`
	MenuID string  `json:"menuId" bson:"menuId"`
	Email  string  `json:"email" bson:"email"`
	Name   string  `json:"name" bson:"name"`
	Image  string  `json:"image,omitempty" bson:"image,omitempty"`
	Price  float64 `json:"price" bson:"price"`
}

// Payment records a completed checkout.
type Payment struct {
	ID            string    `json:"_id" bson:"_id,omitempty"`
	Email         string    `json:"email" bson:"email"`
	Price         float64   `json:"price" bson:"price"`
	TransactionID string    `json:"transactionId" bson:"transactionId"`
	Date          time.Time `json:"date" bson:"date"`
	CartIDs       []string  `json:"cartIds" bson:"cartIds"`
	MenuIDs       []string  `json:"menuIds" bson:"menuIds"`
	Status        string    `json:"status" bson:"status"`
}

// AdminStats summarises the store for the admin dashboard.
type AdminStats struct {
	Users     int64   `json:"users"`
	FoodItems int64   `json:"foodItems"`
	Orders    int64   `json:"orders"`
	Revenue   float64 `json:"revenue"`
}

// CategoryStat is the number of sold items and revenue for one menu category.
type CategoryStat struct {
	Category string  `json:"category" bson:"category"`
	Quantity int64   `json:"quantity" bson:"quantity"`
	Revenue  float64 `json:"revenue" bson:"revenue"`
}
