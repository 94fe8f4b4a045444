package device

const wikimediaThumbs = "https://upload.wikimedia.org/wikipedia/commons/thumb/"
const wikipedia = "https://en.wikipedia.org/wiki/"

func year(y int) *int { return &y }

var sampleDevices = []Device{
	{Name: "Commodore 64", Category: CategoryDesktop, StartYear: 1982, EndYear: year(1989),
		ImageURL:    wikimediaThumbs + "4/4e/Commodore-64-Computer-FL.jpg/640px-Commodore-64-Computer-FL.jpg",
		Description: "One of the most popular home computers of all time",
		Notes:       "My first computer! Learned BASIC programming on this.",
		WikiURL:     wikipedia + "Commodore_64"},
	{Name: "Nintendo Entertainment System", Category: CategoryGaming, StartYear: 1985, EndYear: year(1991),
		ImageURL:    wikimediaThumbs + "0/05/Nintendo-Entertainment-System-NES-FL.jpg/640px-Nintendo-Entertainment-System-NES-FL.jpg",
		Description: "Revolutionary 8-bit home video game console",
		Notes:       "Countless hours playing Super Mario Bros and Zelda",
		WikiURL:     wikipedia + "Nintendo_Entertainment_System"},
	{Name: "Macintosh Classic", Category: CategoryDesktop, StartYear: 1990, EndYear: year(1994),
		ImageURL:    wikimediaThumbs + "2/2e/Macintosh_Classic.jpg/640px-Macintosh_Classic.jpg",
		Description: "First affordable Macintosh computer",
		Notes:       "Used for school work and early desktop publishing",
		WikiURL:     wikipedia + "Macintosh_Classic"},
	{Name: "Sony PlayStation", Category: CategoryGaming, StartYear: 1994, EndYear: year(2000),
		ImageURL:    wikimediaThumbs + "3/3a/PSX-Console-wController.jpg/640px-PSX-Console-wController.jpg",
		Description: "Revolutionary 32-bit gaming console",
		Notes:       "Final Fantasy VII and Metal Gear Solid were amazing!",
		WikiURL:     wikipedia + "PlayStation_(console)"},
	{Name: "Nokia 3310", Category: CategorySmartphone, StartYear: 2000, EndYear: year(2003),
		ImageURL:    wikimediaThumbs + "7/7a/Nokia_3310_blue.jpg/640px-Nokia_3310_blue.jpg",
		Description: "Legendary indestructible mobile phone",
		Notes:       "Best phone ever made - survived countless drops!",
		WikiURL:     wikipedia + "Nokia_3310"},
	{Name: "iPod Classic", Category: CategoryAudio, StartYear: 2001, EndYear: year(2007),
		ImageURL:    wikimediaThumbs + "3/3b/IPod_classic_5th_generation_black.jpg/640px-IPod_classic_5th_generation_black.jpg",
		Description: "Revolutionary portable music player",
		Notes:       "Changed how we listen to music on the go",
		WikiURL:     wikipedia + "IPod_Classic"},
	{Name: "Nintendo DS", Category: CategoryGaming, StartYear: 2004, EndYear: year(2009),
		ImageURL:    wikimediaThumbs + "c/c3/Nintendo-DS-Fat-Blue.jpg/640px-Nintendo-DS-Fat-Blue.jpg",
		Description: "Innovative dual-screen handheld console",
		Notes:       "Great for travel and casual gaming",
		WikiURL:     wikipedia + "Nintendo_DS"},
	{Name: "iPhone 3G", Category: CategorySmartphone, StartYear: 2008, EndYear: year(2010),
		ImageURL:    wikimediaThumbs + "7/7d/IPhone_3G_White.png/640px-IPhone_3G_White.png",
		Description: "First iPhone with 3G and App Store",
		Notes:       "My first smartphone - changed everything!",
		WikiURL:     wikipedia + "IPhone_3G"},
	{Name: "iPad (1st generation)", Category: CategoryTablet, StartYear: 2010, EndYear: year(2012),
		ImageURL:    wikimediaThumbs + "0/0c/IPad_1st_generation.png/640px-IPad_1st_generation.png",
		Description: "Revolutionary tablet computer",
		Notes:       "Perfect for reading and casual browsing",
		WikiURL:     wikipedia + "IPad_(1st_generation)"},
	{Name: "PlayStation 4", Category: CategoryGaming, StartYear: 2013, EndYear: year(2020),
		ImageURL:    wikimediaThumbs + "8/83/PS4-Console-wDS4.jpg/640px-PS4-Console-wDS4.jpg",
		Description: "Eighth-generation home video game console",
		Notes:       "Amazing exclusives like God of War and Spider-Man",
		WikiURL:     wikipedia + "PlayStation_4"},
	{Name: "MacBook Pro (M1)", Category: CategoryLaptop, StartYear: 2020,
		ImageURL:    wikimediaThumbs + "8/8d/MacBook_Pro_16-inch_%282019%29.png/640px-MacBook_Pro_16-inch_%282019%29.png",
		Description: "Revolutionary ARM-based laptop",
		Notes:       "Incredible performance and battery life",
		WikiURL:     wikipedia + "MacBook_Pro"},
	{Name: "Sony WH-1000XM4", Category: CategoryAudio, StartYear: 2020,
		ImageURL:    wikimediaThumbs + "8/8c/Sony_WH-1000XM4.jpg/640px-Sony_WH-1000XM4.jpg",
		Description: "Premium noise-cancelling headphones",
		Notes:       "Best headphones I've ever owned",
		WikiURL:     wikipedia + "Sony_WH-1000XM4"},
	{Name: "iPhone 13 Pro", Category: CategorySmartphone, StartYear: 2021,
		ImageURL:    wikimediaThumbs + "9/9d/IPhone_13_Pro_Blue.png/640px-IPhone_13_Pro_Blue.png",
		Description: "Flagship smartphone with Pro camera system",
		Notes:       "Amazing camera and battery life",
		WikiURL:     wikipedia + "IPhone_13_Pro"},
	{Name: "Nintendo Switch OLED", Category: CategoryGaming, StartYear: 2021,
		ImageURL:    wikimediaThumbs + "4/4a/Nintendo-Switch-OLED-Model-wJoyCons-Bl.jpg/640px-Nintendo-Switch-OLED-Model-wJoyCons-Bl.jpg",
		Description: "Hybrid gaming console with OLED screen",
		Notes:       "Perfect for both home and portable gaming",
		WikiURL:     wikipedia + "Nintendo_Switch"},
	{Name: "Sony Alpha A7 IV", Category: CategoryCamera, StartYear: 2021,
		ImageURL:    wikimediaThumbs + "2/2d/Sony_Alpha_A7_IV.jpg/640px-Sony_Alpha_A7_IV.jpg",
		Description: "Full-frame mirrorless camera",
		Notes:       "Incredible photo and video quality",
		WikiURL:     wikipedia + "Sony_%CE%B17_IV"},
	{Name: "Apple Watch Series 7", Category: CategorySmartwatch, StartYear: 2021,
		ImageURL:    wikimediaThumbs + "3/3c/Apple_Watch_Series_7.png/640px-Apple_Watch_Series_7.png",
		Description: "Advanced health and fitness smartwatch",
		Notes:       "Great for tracking workouts and notifications",
		WikiURL:     wikipedia + "Apple_Watch"},
	{Name: "Samsung Galaxy S22 Ultra", Category: CategorySmartphone, StartYear: 2022,
		ImageURL:    wikimediaThumbs + "2/2d/Samsung_Galaxy_S22_Ultra.png/640px-Samsung_Galaxy_S22_Ultra.png",
		Description: "Premium Android smartphone with S Pen",
		Notes:       "Excellent camera and display",
		WikiURL:     wikipedia + "Samsung_Galaxy_S22"},
	{Name: "PlayStation 5", Category: CategoryGaming, StartYear: 2020,
		ImageURL:    wikimediaThumbs + "1/1b/PlayStation_5_and_DualSense_with_transparent_background.png/640px-PlayStation_5_and_DualSense_with_transparent_background.png",
		Description: "Next-generation gaming console",
		Notes:       "Incredible graphics and fast loading times",
		WikiURL:     wikipedia + "PlayStation_5"},
	{Name: "iPad Pro (M2)", Category: CategoryTablet, StartYear: 2022,
		ImageURL:    wikimediaThumbs + "0/0c/IPad_Pro_12.9-inch_5th_generation.png/640px-IPad_Pro_12.9-inch_5th_generation.png",
		Description: "Professional-grade tablet with M2 chip",
		Notes:       "Perfect for digital art and productivity",
		WikiURL:     wikipedia + "IPad_Pro"},
	{Name: "Mac Studio", Category: CategoryDesktop, StartYear: 2022,
		ImageURL:    wikimediaThumbs + "2/2d/Mac_Studio.png/640px-Mac_Studio.png",
		Description: "Professional desktop computer",
		Notes:       "Incredible performance for creative work",
		WikiURL:     wikipedia + "Mac_Studio"},
}

// SampleDevices returns the demo collection with fresh IDs.
func SampleDevices() []Device {
	out := make([]Device, len(sampleDevices))
	for i := range sampleDevices {
		out[i] = *sampleDevices[i].DeepCopy()
		out[i].ID = GenerateID()
	}
	return out
}
