package handler

// insertResponse mirrors the store's insertOne acknowledgement.
type insertResponse struct {
	InsertedID string `json:"insertedId"`
}

// deleteResponse mirrors the store's deleteOne acknowledgement.
type deleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// registerResponse is returned by POST /users. InsertedID is null when the
// account already existed.
type registerResponse struct {
	Message    string  `json:"message,omitempty"`
	InsertedID *string `json:"insertedId"`
}

type tokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type adminStatusResponse struct {
	Admin bool `json:"admin"`
}

type registerUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

type createReservationRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Guests int    `json:"guests" validate:"gt=0"`
	Date   string `json:"date" validate:"required"`
	Time   string `json:"time" validate:"required"`
}

type updateReservationRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved cancelled"`
}

type menuItemRequest struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Recipe   string  `json:"recipe"`
	Image    string  `json:"image"`
}

type reviewRequest struct {
	Name    string  `json:"name"`
	Details string  `json:"details" validate:"required"`
	Rating  float64 `json:"rating" validate:"gte=0,lte=5"`
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

type cartItemRequest struct {
	MenuID string  `json:"menuId" validate:"required"`
	Name   string  `json:"name"`
	Image  string  `json:"image"`
	Price  float64 `json:"price" validate:"gte=0"`
}

type paymentIntentRequest struct {
	Price float64 `json:"price" validate:"gt=0"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type paymentRequest struct {
	Price         float64  `json:"price" validate:"gt=0"`
	TransactionID string   `json:"transactionId" validate:"required"`
	CartIDs       []string `json:"cartIds"`
	MenuIDs       []string `json:"menuIds"`
}
