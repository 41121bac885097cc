package models

// StockAlert is raised when an order asks for more than the catalog has
type StockAlert struct {
	OrderReference string  `json:"orderReference"`
	ProductID      string  `json:"productId"`
	ProductName    string  `json:"productName"`
	Requested      int     `json:"requested"`
	Available      float64 `json:"available"`
	Shortfall      float64 `json:"shortfall"`
}
