package httpapi

import "net/http"

// Router binds every teller operation to its route under /api/v1.
// Registration is explicit so the surface is readable in one place.
func (s *Server) Router() http.Handler {
	v1 := http.NewServeMux()

	v1.HandleFunc("GET /health", s.health)
	v1.HandleFunc("GET /rates", s.rates)

	v1.HandleFunc("POST /clients", s.createClient)
	v1.HandleFunc("PUT /clients/{id}/phone", s.updateClientPhone)
	v1.HandleFunc("PUT /clients/{id}/email", s.updateClientEmail)

	v1.HandleFunc("POST /accounts", s.openAccount)
	v1.HandleFunc("POST /accounts/{number}/deposit", s.deposit)
	v1.HandleFunc("POST /accounts/{number}/deposit-usd", s.depositUSD)
	v1.HandleFunc("POST /accounts/{number}/withdraw", s.withdraw)
	v1.HandleFunc("POST /accounts/{number}/withdraw-usd", s.withdrawUSD)
	v1.HandleFunc("POST /accounts/{number}/balance", s.balance)
	v1.HandleFunc("POST /accounts/{number}/balance-usd", s.balanceUSD)
	v1.HandleFunc("POST /accounts/{number}/transactions", s.transactions)
	v1.HandleFunc("POST /accounts/{number}/summary", s.summary)
	v1.HandleFunc("POST /accounts/{number}/status", s.status)
	v1.HandleFunc("PUT /accounts/{number}/pin", s.changePIN)
	v1.HandleFunc("DELETE /accounts/{number}", s.deleteAccount)

	v1.HandleFunc("POST /transfers", s.transfer)

	root := http.NewServeMux()
	root.Handle("/api/v1/", http.StripPrefix("/api/v1", v1))
	return root
}
