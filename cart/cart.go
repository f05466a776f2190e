// Package cart is the client-side shopping cart state container. The
// cart is never persisted server-side: state lives with the client and
// only becomes an Order at checkout. Mutations go through a reducer
// over a fixed set of actions, and every mutation is written back to
// storage so a restarted client rehydrates where it left off.
package cart

// Item is one selected product with the quantity chosen so far.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// State is the full cart contents.
type State struct {
	Items []Item `json:"items"`
}

// ItemCount is the total quantity across all line items.
func (s State) ItemCount() int {
	count := 0
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal is the cart value at the prices the items were added with.
// The server re-prices every line at checkout, this figure is display
// only.
func (s State) Subtotal() float64 {
	var total float64
	for _, item := range s.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// find returns the index of productID in s.Items, or -1.
func (s State) find(productID string) int {
	for i, item := range s.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// An Action is one cart mutation understood by Reduce.
type Action interface {
	reduce(State) State
}

// AddItem puts a product in the cart, merging quantities if it is
// already there.
type AddItem struct {
	Item Item
}

func (a AddItem) reduce(s State) State {
	if a.Item.Quantity <= 0 {
		return s
	}
	next := cloneState(s)
	if i := next.find(a.Item.ProductID); i >= 0 {
		next.Items[i].Quantity += a.Item.Quantity
		return next
	}
	next.Items = append(next.Items, a.Item)
	return next
}

// SetQuantity replaces a line item's quantity. Zero or negative
// removes the item; unknown product ids are a no-op.
type SetQuantity struct {
	ProductID string
	Quantity  int
}

func (a SetQuantity) reduce(s State) State {
	i := s.find(a.ProductID)
	if i < 0 {
		return s
	}
	if a.Quantity <= 0 {
		return RemoveItem{ProductID: a.ProductID}.reduce(s)
	}
	next := cloneState(s)
	next.Items[i].Quantity = a.Quantity
	return next
}

// RemoveItem drops a line item.
type RemoveItem struct {
	ProductID string
}

func (a RemoveItem) reduce(s State) State {
	i := s.find(a.ProductID)
	if i < 0 {
		return s
	}
	next := State{Items: make([]Item, 0, len(s.Items)-1)}
	next.Items = append(next.Items, s.Items[:i]...)
	next.Items = append(next.Items, s.Items[i+1:]...)
	return next
}

// Clear empties the cart.
type Clear struct{}

func (Clear) reduce(State) State {
	return State{}
}

// Reduce applies one action and returns the next state. The input
// state is never modified.
func Reduce(s State, a Action) State {
	return a.reduce(s)
}

func cloneState(s State) State {
	next := State{Items: make([]Item, len(s.Items))}
	copy(next.Items, s.Items)
	return next
}
