package ctdf

type Station struct {
	Code    string   `json:"code" bson:"code" groups:"basic,detailed"`
	Name    string   `json:"name" bson:"name" groups:"basic,detailed"`
	City    string   `json:"city,omitempty" bson:"city" groups:"detailed"`
	Aliases []string `json:"aliases,omitempty" bson:"aliases" groups:"detailed"`
}
