package pos

import (
	"errors"
	"testing"
)

func openTicketCount(s *Store, tableID string) int {
	n := 0
	for _, tk := range s.Snapshot().Tickets {
		if tk.TableID == tableID {
			n++
		}
	}
	return n
}

// Bir masada aynı anda en fazla bir açık adisyon olur.
func TestSingleTicketPerTable(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("3", 1, nil)
	if err := s.SaveCartToTable("t1"); err != nil {
		t.Fatalf("SaveCartToTable: %v", err)
	}
	if err := s.SetGuestName("t1", "Oda 204"); err != nil {
		t.Fatalf("SetGuestName: %v", err)
	}
	s.AddItem("3", 2, nil)
	if err := s.ParkCartToTable("t1"); err != nil {
		t.Fatalf("ParkCartToTable: %v", err)
	}

	if got := openTicketCount(s, "t1"); got != 1 {
		t.Errorf("masada %d adisyon var, want 1", got)
	}
}

func TestSaveCartReplacesItems(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("3", 3, nil)
	if err := s.SaveCartToTable("t1"); err != nil {
		t.Fatalf("SaveCartToTable: %v", err)
	}
	if err := s.SetGuestName("t1", "Oda 204"); err != nil {
		t.Fatalf("SetGuestName: %v", err)
	}
	if _, err := s.SendToKitchen("t1"); err != nil {
		t.Fatalf("SendToKitchen: %v", err)
	}

	// Sepet küçülür, tekrar kaydedilir: satırlar KOMPLE değişir,
	// misafir adı ve sayaçlar korunur
	s.ClearCart()
	s.AddItem("1", 1, nil)
	if err := s.SaveCartToTable("t1"); err != nil {
		t.Fatalf("ikinci SaveCartToTable: %v", err)
	}

	tk, ok := s.TicketByTable("t1")
	if !ok {
		t.Fatal("adisyon bulunamadı")
	}
	if len(tk.Items) != 1 || tk.Items[0].ItemID != "1" {
		t.Errorf("adisyon satırları sepetle değişmeli: %+v", tk.Items)
	}
	if tk.GuestName != "Oda 204" {
		t.Errorf("misafir adı korunmalı, got %q", tk.GuestName)
	}
	if tk.Kitchen.Prep[ShapeKey("3", nil)] != 3 {
		t.Errorf("mutfak sayaçları korunmalı: %+v", tk.Kitchen.Prep)
	}
}

func TestParkCartMergesAndClears(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("3", 2, nil)
	if err := s.ParkCartToTable("t2"); err != nil {
		t.Fatalf("ParkCartToTable: %v", err)
	}
	if got := len(s.CartLines()); got != 0 {
		t.Fatalf("park sonrası sepette %d satır kaldı, want 0", got)
	}

	s.AddItem("3", 1, nil)
	s.AddItem("1", 1, nil)
	if err := s.ParkCartToTable("t2"); err != nil {
		t.Fatalf("ikinci ParkCartToTable: %v", err)
	}

	tk, _ := s.TicketByTable("t2")
	if len(tk.Items) != 2 {
		t.Fatalf("adisyonda %d satır var, want 2", len(tk.Items))
	}
	if tk.Items[0].ItemID != "3" || tk.Items[0].Qty != 3 {
		t.Errorf("aynı şekil birleşmeli: %+v", tk.Items[0])
	}
}

func TestLoadTableToCart(t *testing.T) {
	s := newTestStore(t)

	if err := s.LoadTableToCart("t3"); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("err = %v, want ErrTicketNotFound", err)
	}

	s.AddItem("3", 2, nil)
	s.ParkCartToTable("t3")
	if err := s.LoadTableToCart("t3"); err != nil {
		t.Fatalf("LoadTableToCart: %v", err)
	}

	lines := s.CartLines()
	if len(lines) != 1 || lines[0].Qty != 2 {
		t.Errorf("sepet adisyondan yüklenmedi: %+v", lines)
	}
	if st := s.Snapshot(); st.ActiveTableID != "t3" {
		t.Errorf("ActiveTableID = %q, want t3", st.ActiveTableID)
	}

	// Sepetteki değişiklik adisyonu etkilemez (kopya)
	s.AddItem("3", 5, nil)
	tk, _ := s.TicketByTable("t3")
	if tk.Items[0].Qty != 2 {
		t.Errorf("adisyon sepet kopyasından etkilenmemeli: %+v", tk.Items)
	}
}

func TestClearTicketKeepsKitchenQueue(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("3", 2, nil)
	if _, err := s.SendToKitchen("t1"); err != nil {
		t.Fatalf("SendToKitchen: %v", err)
	}

	if err := s.ClearTicket("t1"); err != nil {
		t.Fatalf("ClearTicket: %v", err)
	}
	if s.IsTableOccupied("t1") {
		t.Error("adisyon silinince masa boşalmalı")
	}
	// Mutfağa gitmiş fiş yerinde kalır: yemek pişiyor olabilir
	if got := len(s.Snapshot().KitchenQueue); got != 1 {
		t.Errorf("kuyrukta %d fiş var, want 1", got)
	}

	if err := s.ClearTicket("t1"); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("err = %v, want ErrTicketNotFound", err)
	}
}

func TestTransferTicketToEmptyTable(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("3", 2, nil)
	s.ParkCartToTable("t1")
	s.SetGuestName("t1", "Oda 101")

	if err := s.TransferTicket("t1", "t4"); err != nil {
		t.Fatalf("TransferTicket: %v", err)
	}
	if s.IsTableOccupied("t1") {
		t.Error("kaynak masa boşalmalı")
	}
	tk, ok := s.TicketByTable("t4")
	if !ok {
		t.Fatal("hedef masada adisyon olmalı")
	}
	if tk.GuestName != "Oda 101" || len(tk.Items) != 1 {
		t.Errorf("adisyon olduğu gibi taşınmalı: %+v", tk)
	}
}

func TestTransferTicketMergesIntoOccupiedTable(t *testing.T) {
	s := newTestStore(t)
	key := ShapeKey("3", nil)

	// Kaynak: 2 naan mutfakta
	s.AddItem("3", 2, nil)
	if _, err := s.SendToKitchen("t1"); err != nil {
		t.Fatalf("SendToKitchen t1: %v", err)
	}
	s.ClearCart()
	s.SetGuestName("t1", "Oda 101")

	// Hedef: 1 naan mutfakta, misafir adı zaten var
	s.AddItem("3", 1, nil)
	if _, err := s.SendToKitchen("t2"); err != nil {
		t.Fatalf("SendToKitchen t2: %v", err)
	}
	s.ClearCart()
	s.SetGuestName("t2", "Oda 202")

	if err := s.TransferTicket("t1", "t2"); err != nil {
		t.Fatalf("TransferTicket: %v", err)
	}

	if s.IsTableOccupied("t1") {
		t.Error("kaynak masa boşalmalı")
	}
	if got := openTicketCount(s, "t2"); got != 1 {
		t.Fatalf("hedefte %d adisyon var, want 1", got)
	}
	tk, _ := s.TicketByTable("t2")
	if len(tk.Items) != 1 || tk.Items[0].Qty != 3 {
		t.Errorf("satırlar şekil bazında birleşmeli: %+v", tk.Items)
	}
	if tk.Kitchen.Prep[key] != 3 {
		t.Errorf("sayaçlar anahtar bazında toplanmalı: %+v", tk.Kitchen.Prep)
	}
	if tk.GuestName != "Oda 202" {
		t.Errorf("hedefin misafir adı ezilmemeli, got %q", tk.GuestName)
	}
}

func TestTransferTicketErrors(t *testing.T) {
	s := newTestStore(t)

	if err := s.TransferTicket("t1", "t1"); !errors.Is(err, ErrSameTable) {
		t.Errorf("err = %v, want ErrSameTable", err)
	}
	if err := s.TransferTicket("", "t2"); !errors.Is(err, ErrTableNotFound) {
		t.Errorf("err = %v, want ErrTableNotFound", err)
	}
	if err := s.TransferTicket("t1", "t2"); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("boş masadan taşıma: err = %v, want ErrTicketNotFound", err)
	}
}

func TestGuestNameOpensTicket(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetGuestName("t5", "Oda 500"); err != nil {
		t.Fatalf("SetGuestName: %v", err)
	}
	tk, ok := s.TicketByTable("t5")
	if !ok {
		t.Fatal("misafir adı atamak adisyon açmalı")
	}
	if tk.GuestName != "Oda 500" || len(tk.Items) != 0 {
		t.Errorf("boş adisyon + isim bekleniyordu: %+v", tk)
	}
	if tk.Kitchen.Prep == nil || tk.Kitchen.Served == nil {
		t.Error("yeni adisyonun sayaç haritaları hazır olmalı")
	}
}
