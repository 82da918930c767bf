package domain

import "time"

// MenuItem is a dish offered by the restaurant.
type MenuItem struct {
	ID       string  `json:"_id" bson:"_id,omitempty"`
	Name     string  `json:"name" bson:"name"`
	Category string  `json:"category" bson:"category"`
	Price    float64 `json:"price" bson:"price"`
	Recipe   string  `json:"recipe,omitempty" bson:"recipe,omitempty"`
	Image    string  `json:"image,omitempty" bson:"image,omitempty"`
}

// Review is a customer testimonial.
type Review struct {
	ID        string    `json:"_id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Details   string    `json:"details" bson:"details"`
	Rating    float64   `json:"rating" bson:"rating"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Contact is a message left through the public contact form.
type Contact struct {
	ID        string    `json:"_id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
