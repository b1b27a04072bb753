package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	customersvc "salesdesk/internal/customer/service"
	"salesdesk/internal/domain"
	ordersvc "salesdesk/internal/order/service"
	productsvc "salesdesk/internal/product/service"
)

var (
	firstNames = []string{
		"Alice", "Bob", "Catherine", "David", "Eva", "Francis", "Grace",
		"Henry", "Irene", "James", "Karen", "Liam", "Mary", "Noah", "Olivia",
	}
	lastNames = []string{
		"Wanjiru", "Ochieng", "Njeri", "Mutua", "Akinyi", "Kiprotich",
		"Wangari", "Otieno", "Chebet", "Mwangi", "Kamau", "Nyambura",
	}
	cities = []string{"Nairobi", "Mombasa", "Kisumu", "Nakuru", "Eldoret"}

	productAdjectives = []string{
		"Compact", "Deluxe", "Ergonomic", "Modern", "Portable", "Premium",
		"Rugged", "Smart", "Wireless", "Classic",
	}
	productNouns = []string{
		"Laptop", "Headphones", "Office Chair", "Coffee Maker", "Desk",
		"Kettle", "Mouse", "Bookshelf", "Blender", "Monitor", "Keyboard",
	}
	categories = []string{"Electronics", "Furniture", "Appliances"}
)

func (p *Pipeline) generateCustomers(n int) []customersvc.CreateInput {
	inputs := make([]customersvc.CreateInput, 0, n)
	for i := 0; i < n; i++ {
		first := firstNames[p.rnd.Intn(len(firstNames))]
		last := lastNames[p.rnd.Intn(len(lastNames))]
		address := fmt.Sprintf("%d %s St", p.rnd.Intn(900)+100, lastNames[p.rnd.Intn(len(lastNames))])
		city := cities[p.rnd.Intn(len(cities))]

		inputs = append(inputs, customersvc.CreateInput{
			FirstName: first,
			LastName:  last,
			Phone:     fmt.Sprintf("+2547%08d", p.rnd.Intn(100000000)),
			// The index keeps emails unique within a run even when the
			// name pair repeats.
			Email:   fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1),
			Address: &address,
			City:    &city,
		})
	}
	return inputs
}

func (p *Pipeline) generateProducts(n int) []productsvc.CreateInput {
	inputs := make([]productsvc.CreateInput, 0, n)
	for i := 0; i < n; i++ {
		adjective := productAdjectives[p.rnd.Intn(len(productAdjectives))]
		noun := productNouns[p.rnd.Intn(len(productNouns))]
		name := fmt.Sprintf("%s %s %d", adjective, noun, i+1)
		description := fmt.Sprintf("%s %s for everyday use", adjective, noun)

		inputs = append(inputs, productsvc.CreateInput{
			Name:        name,
			Description: &description,
			Category:    categories[p.rnd.Intn(len(categories))],
			// Whole cents between 1.00 and 1000.00.
			UnitCost: decimal.New(int64(p.rnd.Intn(99901)+100), -2),
			Quantity: p.rnd.Intn(100) + 1,
		})
	}
	return inputs
}

func (p *Pipeline) generateOrders(n int, customers []domain.Customer, products []domain.Product) []ordersvc.CreateInput {
	paymentMethods := domain.PaymentMethods()
	statuses := domain.OrderStatuses()
	runStamp := time.Now().UnixMilli()

	inputs := make([]ordersvc.CreateInput, 0, n)
	for i := 0; i < n; i++ {
		customer := customers[p.rnd.Intn(len(customers))]

		itemCount := p.rnd.Intn(maxItemsPerOrder) + 1
		selected := p.sampleProducts(products, itemCount)
		items := make([]ordersvc.ItemInput, 0, len(selected))
		for _, product := range selected {
			items = append(items, ordersvc.ItemInput{
				ProductID: product.ID,
				Quantity:  p.rnd.Intn(maxItemQuantity) + 1,
				UnitCost:  product.UnitCost,
			})
		}

		shipping := fmt.Sprintf("%s, %s", deref(customer.Address), deref(customer.City))
		description := fmt.Sprintf("Order for %s", customer.FullName())

		inputs = append(inputs, ordersvc.CreateInput{
			CustomerID:      customer.ID,
			OrderDate:       time.Now().UTC().AddDate(0, 0, -p.rnd.Intn(30)),
			Description:     &description,
			PaymentMethod:   paymentMethods[p.rnd.Intn(len(paymentMethods))],
			ShippingAddress: shipping,
			Status:          statuses[p.rnd.Intn(len(statuses))],
			// The run timestamp plus a run-local sequence keeps numbers
			// unique within the run; collisions with prior data are
			// checked before insert.
			OrderNumber: fmt.Sprintf("ORD-%d-%d", runStamp, i+1),
			Items:       items,
		})
	}
	return inputs
}

// sampleProducts picks up to n distinct products, bounded by the size
// of the available set.
func (p *Pipeline) sampleProducts(products []domain.Product, n int) []domain.Product {
	if n > len(products) {
		n = len(products)
	}

	picked := make([]domain.Product, 0, n)
	used := make(map[int]struct{}, n)
	for len(picked) < n {
		idx := p.rnd.Intn(len(products))
		if _, ok := used[idx]; ok {
			continue
		}
		used[idx] = struct{}{}
		picked = append(picked, products[idx])
	}
	return picked
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
