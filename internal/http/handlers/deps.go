package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"emporium/internal/config"
	"emporium/internal/mail"
	"emporium/internal/repos"
	"emporium/internal/services"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler    *AuthHandler
	AccountHandler *AccountHandler
	ProductHandler *ProductHandler
	AddressHandler *AddressHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	accountRepo := repos.NewAccountRepo(db)
	prodRepo := repos.NewProductRepo(db)
	addrRepo := repos.NewAddressRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	authSvc := services.NewAuthService(accountRepo)
	accountSvc := services.NewAccountService(accountRepo)
	prodSvc := services.NewProductService(prodRepo)
	addrSvc := services.NewAddressService(addrRepo)
	cartSvc := services.NewCartService(db, cartRepo)
	checkoutSvc := services.NewCheckoutService(db, cartRepo, prodRepo, addrRepo, orderRepo)
	orderSvc := services.NewOrderService(orderRepo)
	mailer := mail.NewMailer(cfg.SendGridKey, cfg.EmailSender)

	return &Deps{
		Auth:           authSvc,
		AuthHandler:    &AuthHandler{Auth: authSvc, Accounts: accountSvc},
		AccountHandler: &AccountHandler{Accounts: accountSvc},
		ProductHandler: &ProductHandler{Prods: prodSvc},
		AddressHandler: &AddressHandler{Addrs: addrSvc},
		CartHandler: &CartHandler{
			Carts:    cartSvc,
			Checkout: checkoutSvc,
			Orders:   orderSvc,
			Accounts: accountSvc,
			Mailer:   mailer,
		},
		OrderHandler: &OrderHandler{Orders: orderSvc},
	}
}

// Register mounts every route. Main and the HTTP tests share this wiring.
func (d *Deps) Register(app *fiber.App) {
	auth := app.Group("/auth")
	auth.Post("/register", d.AuthHandler.Register)
	auth.Post("/login", d.AuthHandler.Login)
	auth.Post("/logout", d.AuthHandler.Logout)

	app.Get("/products", d.ProductHandler.List)
	app.Get("/products/:productId", d.ProductHandler.Get)
	app.Post("/products", RequireAdmin(d.Auth), d.ProductHandler.Create)

	account := app.Group("/account", RequireAccount(d.Auth))
	account.Get("/", d.AccountHandler.Get)
	account.Put("/", d.AccountHandler.Update)

	addresses := app.Group("/addresses", RequireAccount(d.Auth))
	addresses.Get("/", d.AddressHandler.List)
	addresses.Post("/", d.AddressHandler.Create)
	addresses.Get("/:addressId", d.AddressHandler.Get)
	addresses.Put("/:addressId", d.AddressHandler.Update)
	addresses.Delete("/:addressId", d.AddressHandler.Delete)

	carts := app.Group("/carts", RequireAccount(d.Auth))
	carts.Get("/", d.CartHandler.List)
	carts.Post("/", d.CartHandler.Create)
	carts.Get("/:cartId", d.CartHandler.Get)
	carts.Put("/:cartId", d.CartHandler.Replace)
	carts.Delete("/:cartId", d.CartHandler.Delete)
	carts.Post("/:cartId/checkout", d.CartHandler.CheckoutCart)

	orders := app.Group("/orders", RequireAccount(d.Auth))
	orders.Get("/", d.OrderHandler.List)
	orders.Get("/:orderId", d.OrderHandler.Get)
}
