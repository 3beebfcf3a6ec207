package types

// Address is a free-form shipping address kept only in the session store,
// never synced to the backend.
type Address struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
}

// AddressBook is the ordered per-user address list plus the stable-ID
// selection pointer. Stable IDs replace the source's fragile array-index
// selection.
type AddressBook struct {
	Addresses  []Address `json:"addresses"`
	SelectedID string    `json:"selected_id"`
}

// Add appends the address. The first address ever added becomes selected.
func (b *AddressBook) Add(addr Address) {
	b.Addresses = append(b.Addresses, addr)
	if b.SelectedID == "" {
		b.SelectedID = addr.ID
	}
}

// Update replaces the address with the same ID; it reports whether a match
// was found.
func (b *AddressBook) Update(addr Address) bool {
	for i := range b.Addresses {
		if b.Addresses[i].ID == addr.ID {
			b.Addresses[i] = addr
			return true
		}
	}
	return false
}

// Remove deletes the address by ID. Removing a non-selected address leaves
// the selection untouched; removing the selected one falls back to the first
// remaining address, or clears the selection when the book is empty.
func (b *AddressBook) Remove(id string) bool {
	idx := -1
	for i := range b.Addresses {
		if b.Addresses[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	b.Addresses = append(b.Addresses[:idx], b.Addresses[idx+1:]...)

	if b.SelectedID == id {
		if len(b.Addresses) > 0 {
			b.SelectedID = b.Addresses[0].ID
		} else {
			b.SelectedID = ""
		}
	}
	return true
}

// Select marks the address as the checkout target; it reports whether the ID
// exists.
func (b *AddressBook) Select(id string) bool {
	for i := range b.Addresses {
		if b.Addresses[i].ID == id {
			b.SelectedID = id
			return true
		}
	}
	return false
}

// Selected returns the currently selected address, if any.
func (b *AddressBook) Selected() (Address, bool) {
	for i := range b.Addresses {
		if b.Addresses[i].ID == b.SelectedID {
			return b.Addresses[i], true
		}
	}
	return Address{}, false
}
