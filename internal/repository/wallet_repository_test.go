package repository

import "testing"

func TestWallet_AddXPAndCoinsAccumulates(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))

	if err := repo.AddXPAndCoins(1, 25, 10); err != nil {
		t.Fatalf("AddXPAndCoins: %v", err)
	}
	if err := repo.AddXPAndCoins(1, 30, 10); err != nil {
		t.Fatalf("AddXPAndCoins: %v", err)
	}

	wallet, err := repo.FindByUser(1)
	if err != nil {
		t.Fatalf("FindByUser: %v", err)
	}
	if wallet.TotalXP != 55 || wallet.CoinBalance != 20 {
		t.Errorf("xp=%d coins=%d, want 55/20", wallet.TotalXP, wallet.CoinBalance)
	}
}

func TestWallet_GetOrCreateInitializesEmpty(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))

	wallet, err := repo.GetOrCreate(42)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if wallet.TotalXP != 0 || wallet.Level != 1 || wallet.XPToNext != 100 {
		t.Errorf("fresh wallet = %+v, want 0 xp at level 1", wallet)
	}
}

func TestWallet_SkillXPIsPerKey(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))

	repo.AddSkillXP(1, "knowledge", 25)
	repo.AddSkillXP(1, "knowledge", 15)
	repo.AddSkillXP(1, "fitness", 30)

	knowledge, err := repo.FindSkill(1, "knowledge")
	if err != nil {
		t.Fatalf("FindSkill: %v", err)
	}
	if knowledge.XP != 40 {
		t.Errorf("knowledge xp = %d, want 40", knowledge.XP)
	}

	skills, err := repo.ListSkills(1)
	if err != nil {
		t.Fatalf("ListSkills: %v", err)
	}
	if len(skills) != 2 {
		t.Errorf("skills = %d entries, want 2", len(skills))
	}
}

func TestWallet_TopByXPOrders(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))

	repo.AddXPAndCoins(1, 100, 0)
	repo.AddXPAndCoins(2, 300, 0)
	repo.AddXPAndCoins(3, 200, 0)

	wallets, err := repo.TopByXP(2)
	if err != nil {
		t.Fatalf("TopByXP: %v", err)
	}
	if len(wallets) != 2 || wallets[0].UserID != 2 || wallets[1].UserID != 3 {
		t.Errorf("leaderboard order wrong: %+v", wallets)
	}
}
