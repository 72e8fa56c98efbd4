package book

import "time"

// Book is a catalog title and its inventory counts.
type Book struct {
	isbn      ISBN
	metadata  Metadata
	inventory Inventory
	createdAt time.Time
	updatedAt time.Time
}

func NewBook(isbn ISBN, metadata Metadata, inventory Inventory, now time.Time) *Book {
	return &Book{
		isbn:      isbn,
		metadata:  metadata,
		inventory: inventory,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructBook(isbn ISBN, metadata Metadata, inventory Inventory, createdAt, updatedAt time.Time) *Book {
	return &Book{
		isbn:      isbn,
		metadata:  metadata,
		inventory: inventory,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Book) ISBN() ISBN           { return b.isbn }
func (b *Book) Metadata() Metadata   { return b.metadata }
func (b *Book) Inventory() Inventory { return b.inventory }
func (b *Book) CreatedAt() time.Time { return b.createdAt }
func (b *Book) UpdatedAt() time.Time { return b.updatedAt }

func (b *Book) Describe(metadata Metadata, now time.Time) {
	b.metadata = metadata
	b.updatedAt = now
}

func (b *Book) Reserve(quantity int, now time.Time) error {
	next, err := b.inventory.Reserve(quantity)
	if err != nil {
		return err
	}
	b.inventory = next
	b.updatedAt = now
	return nil
}

func (b *Book) Release(quantity int, now time.Time) (clamped bool, err error) {
	next, clamped, err := b.inventory.Release(quantity)
	if err != nil {
		return false, err
	}
	b.inventory = next
	b.updatedAt = now
	return clamped, nil
}

func (b *Book) Resize(total int, now time.Time) error {
	next, err := b.inventory.Resize(total)
	if err != nil {
		return err
	}
	b.inventory = next
	b.updatedAt = now
	return nil
}
