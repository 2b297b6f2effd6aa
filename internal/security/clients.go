package security

// In-memory client registry (replace with DB/config later)
type Client struct {
	ID      string
	Secret  string
	Perms   []string // e.g. {"orders.read","orders.write"}
	Enabled bool
}

var Clients = map[string]Client{
	"storefront":    {ID: "storefront", Secret: "storefront-secret", Perms: []string{"orders.read", "orders.write", "catalog.read"}, Enabled: true},
	"back-office":   {ID: "back-office", Secret: "back-office-secret", Perms: []string{"orders.read", "catalog.read", "catalog.write"}, Enabled: true},
	"svc-analytics": {ID: "svc-analytics", Secret: "ana-secret", Perms: []string{"orders.read"}, Enabled: true},
}
