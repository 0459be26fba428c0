package sim

import "github.com/dshills/quickdraw/internal/game"

// Base FormIDs of the sample loadout.
const (
	FormIronSword   game.FormID = 0x00012EB7
	FormIronShield  game.FormID = 0x00012EB6
	FormIronHelmet  game.FormID = 0x00012E4D
	FormTorch       game.FormID = 0x0001D4EC
	FormHuntingBow  game.FormID = 0x00013985
	FormElvenBow    game.FormID = 0x000139B5
	FormIronArrow   game.FormID = 0x0001397D
	FormSteelArrow  game.FormID = 0x0001397F
	FormGreatsword  game.FormID = 0x0001359D
	FormDwarvenXbow game.FormID = 0x0000F19F
)

// Sample holds refs to the sample loadout.
type Sample struct {
	Sword       game.Ref
	Greatsword  game.Ref
	Shield      game.Ref
	Helmet      game.Ref
	Torch       game.Ref
	HuntingBow  game.Ref
	ElvenBow    game.Ref
	IronArrows  game.Ref
	SteelArrows game.Ref
}

// PopulateSample fills the actor's inventory with a small adventurer's kit.
// Nothing is equipped.
func PopulateSample(a *Actor) Sample {
	return Sample{
		Sword:       a.Add(ItemSpec{Base: FormIronSword, Kind: game.KindWeapon, Weapon: game.WeaponOneHand, Name: "Iron Sword"}),
		Greatsword:  a.Add(ItemSpec{Base: FormGreatsword, Kind: game.KindWeapon, Weapon: game.WeaponTwoHand, Name: "Iron Greatsword"}),
		Shield:      a.Add(ItemSpec{Base: FormIronShield, Kind: game.KindArmor, Name: "Iron Shield", Shield: true}),
		Helmet:      a.Add(ItemSpec{Base: FormIronHelmet, Kind: game.KindArmor, Name: "Iron Helmet"}),
		Torch:       a.Add(ItemSpec{Base: FormTorch, Kind: game.KindLight, Name: "Torch", Count: 3}),
		HuntingBow:  a.Add(ItemSpec{Base: FormHuntingBow, Kind: game.KindWeapon, Weapon: game.WeaponBow, Name: "Hunting Bow"}),
		ElvenBow:    a.Add(ItemSpec{Base: FormElvenBow, Kind: game.KindWeapon, Weapon: game.WeaponBow, Name: "Elven Bow"}),
		IronArrows:  a.Add(ItemSpec{Base: FormIronArrow, Kind: game.KindAmmo, Name: "Iron Arrow", Count: 40}),
		SteelArrows: a.Add(ItemSpec{Base: FormSteelArrow, Kind: game.KindAmmo, Name: "Steel Arrow", Count: 12}),
	}
}
