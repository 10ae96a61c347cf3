package catalog

// DoorDeck returns the base door card set. Callers get a fresh slice but the
// Card values share the package-level payload pointers; treat them as
// read-only.
func DoorDeck() []Card {
	out := make([]Card, len(doorDeck))
	copy(out, doorDeck)
	return out
}

// TreasureDeck returns the base treasure card set.
func TreasureDeck() []Card {
	out := make([]Card, len(treasureDeck))
	copy(out, treasureDeck)
	return out
}

// ByID returns a lookup over both base decks.
func ByID() map[string]Card {
	m := make(map[string]Card, len(doorDeck)+len(treasureDeck))
	for _, c := range doorDeck {
		m[c.ID] = c
	}
	for _, c := range treasureDeck {
		m[c.ID] = c
	}
	return m
}

var doorDeck = []Card{
	{
		ID:          "m1",
		Name:        "Gulyabani",
		Type:        TypeDoor,
		Sub:         SubMonster,
		Description: "Sadece süt kardeşler onu kızdırabilir.",
		Image:       "/assets/cards/gulyabani.png",
		Monster:     &Monster{Level: 10, Treasure: 2, LevelReward: 1, BadStuff: "Seni çuvala koyup götürür. Bütün eşyalarını kaybedersin."},
	},
	{
		ID:          "m2",
		Name:        "Trafik Canavarı",
		Type:        TypeDoor,
		Sub:         SubMonster,
		Description: "Kornaya basıp duruyor.",
		Monster:     &Monster{Level: 16, Treasure: 4, LevelReward: 2, BadStuff: "Ezildin. 1 seviye kaybedersin."},
	},
	{
		ID:          "m3",
		Name:        "Mahalle Abisi",
		Type:        TypeDoor,
		Sub:         SubMonster,
		Description: "Tespih sallıyor.",
		Monster:     &Monster{Level: 4, Treasure: 1, LevelReward: 1, BadStuff: "Sana kafa atar. Başlığını kaybedersin."},
	},
	{
		ID:          "m4",
		Name:        "Altın Günü Teyzeleri",
		Type:        TypeDoor,
		Sub:         SubMonster,
		Description: "Kısır yiyorlar ve seni yargılıyorlar.",
		Monster:     &Monster{Level: 12, Treasure: 3, LevelReward: 1, BadStuff: "Evlenip evlenmediğini sorarlar. Utancından ölürsün."},
	},
	{
		ID:          "m_bedevi",
		Name:        "Bahtsız Bedevi",
		Type:        TypeDoor,
		Sub:         SubMonster,
		Description: "Çölde kutup ayısı ile karşılaşmış.",
		Monster:     &Monster{Level: 1, Treasure: 1, LevelReward: 1, BadStuff: "1 Seviye Kaybedersin."},
	},
	{
		ID:          "m_math",
		Name:        "Matematik Hocası",
		Type:        TypeDoor,
		Sub:         SubMonster,
		Description: "Tahtaya kalkınca dizlerin titrer.",
		Image:       "/assets/cards/math_teacher.png",
		Monster:     &Monster{Level: 8, Treasure: 3, LevelReward: 1, BadStuff: "Matematik sorularıyla boğar. 1 seviye kaybedersin."},
	},
	{
		ID:          "c1",
		Name:        "Nazar Çıktı",
		Type:        TypeDoor,
		Sub:         SubCurse,
		Description: "Envanterindeki veya çantasındaki rastgele bir eşya yok oldu.",
		Curse:       &Curse{Effect: EffectDiscardRandom},
	},
	{
		ID:          "c_cigkofte",
		Name:        "Ekstra Acılı Çiğ Köfte",
		Type:        TypeDoor,
		Sub:         SubCurse,
		Description: "O kadar acı ki gücünü 3 azalttı! (Bir tur boyunca -3 Güç)",
		Image:       "/assets/cards/cigkofte.png",
		Curse:       &Curse{Effect: EffectWeaken, Value: -3, Duration: 1},
	},
	{
		ID:          "cl1",
		Name:        "Esnaf",
		Type:        TypeDoor,
		Sub:         SubClass,
		Description: "Satış yeteneği: Turundaki ilk sattığın eşyayı 2 katı fiyatına satarsın.",
		Heritage:    &Heritage{Abilities: []Ability{AbilityHaggle}},
	},
	{
		ID:          "cl2",
		Name:        "Memur",
		Type:        TypeDoor,
		Sub:         SubClass,
		Description: "Mesai bitti: Savaşta bir kez monsterı görmezden gelip kaçabilirsin.",
		Heritage:    &Heritage{Abilities: []Ability{AbilityEscape}},
	},
	{
		ID:          "fs_arabulucu",
		Name:        "Ara Bulucu",
		Type:        TypeDoor,
		Sub:         SubFightSpell,
		Description: "Savaşçıya huzur verir. Savaşı anında bitirir. Kazanırsın ama 1 Seviye KAYBEDERSİN ve hiç hazine kazanamazsın.",
		Spell:       &FightSpell{Effect: EffectInstantTruce},
	},
	{
		ID:          "fs_olmbakgit",
		Name:        "Olm Bak Git",
		Type:        TypeDoor,
		Sub:         SubFightSpell,
		Description: "Elinizdeki bir canavarı herhangi bir savaşa istediğiniz tarafta dahil edersiniz. Canavarın gücü o tarafa eklenir.",
		Image:       "/assets/cards/olmbakgit.png",
		Spell:       &FightSpell{Effect: EffectMonsterAlly},
	},
}

var treasureDeck = []Card{
	{
		ID:          "i1",
		Name:        "Islak Odun",
		Type:        TypeTreasure,
		Sub:         SubItem,
		Description: "Efsanevi dayak aleti.",
		Image:       "/assets/cards/islakodun.png",
		Item:        &Item{Bonus: 3, GoldValue: 400, Slot: SlotHand},
	},
	{
		ID:          "i2",
		Name:        "Anne Terliği",
		Type:        TypeTreasure,
		Sub:         SubItem,
		Description: "Isabet oranı %100.",
		Image:       "/assets/cards/anneterligi.png",
		Item:        &Item{Bonus: 5, GoldValue: 600, Slot: SlotHand},
	},
	{
		ID:          "i3",
		Name:        "Dantelli Televizyon Örtüsü",
		Type:        TypeTreasure,
		Sub:         SubItem,
		Description: "Canavarların kafasını karıştırır.",
		Item:        &Item{Bonus: 2, GoldValue: 200, Slot: SlotHead},
	},
	{
		ID:          "i4",
		Name:        "Nazar Boncuğu",
		Type:        TypeTreasure,
		Sub:         SubItem,
		Description: "Lanetlere karşı korur.",
		Item:        &Item{Bonus: 1, GoldValue: 100, Slot: SlotBody},
	},
	{
		ID:          "i5",
		Name:        "Çeyrek Altın",
		Type:        TypeTreasure,
		Sub:         SubItem,
		Description: "Düğünde takarsın.",
		Item:        &Item{Bonus: 0, GoldValue: 1000, Slot: SlotNone},
	},
	{
		ID:          "b_ballipust",
		Name:        "Ballı Puşt",
		Type:        TypeTreasure,
		Sub:         SubBlessing,
		Description: "Gene iyisin ha",
		Blessing:    &Blessing{Effect: EffectLevelUp},
	},
	{
		ID:          "fs_mahalleabisi_1",
		Name:        "Mahalle Abisi (Savaş Büyüsü)",
		Type:        TypeTreasure,
		Sub:         SubFightSpell,
		Description: "50 kuruş için ölür. Seçtiğin taraf +5 güç kazanır.",
		Spell:       &FightSpell{Bonus: 5},
	},
}
