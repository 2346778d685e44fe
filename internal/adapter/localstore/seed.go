package localstore

import "vbay/internal/domain"

// SeedListings returns the fixed starter set installed when the listings
// slot is missing or unreadable.
func SeedListings() []domain.Listing {
	return []domain.Listing{
		{
			ID:          "1",
			Title:       "2015 Honda Civic LX",
			Description: "Reliable commuter car, 85k miles. Clean title. Great for getting to and from campus. Recently inspected.",
			Price:       12500.00,
			Category:    domain.CategoryVehicles,
			ImageURLs:   []string{"https://images.unsplash.com/photo-1541899481282-d53bffe3c35d?auto=format&fit=crop&w=800&q=80"},
			SellerID:    "u2",
			SellerEmail: "student.driver@vims.edu",
			CreatedAt:   "2023-10-25T10:00:00Z",
			Condition:   domain.ConditionGood,
		},
		{
			ID:          "2",
			Title:       "Room for Rent - Gloucester Point",
			Description: "Master bedroom in a shared house, 5 mins from VIMS. $600/mo including utilities. Looking for a quiet grad student or staff.",
			Price:       600.00,
			Category:    domain.CategoryHousing,
			ImageURLs:   []string{"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?auto=format&fit=crop&w=800&q=80"},
			SellerID:    "u3",
			SellerEmail: "landlord.staff@vims.edu",
			CreatedAt:   "2023-10-26T14:30:00Z",
			Condition:   domain.ConditionGood,
		},
		{
			ID:          "3",
			Title:       "IKEA Sectional Sofa",
			Description: "Grey L-shaped sofa. About 2 years old. Must pick up, I cannot deliver.",
			Price:       150.00,
			Category:    domain.CategoryFurniture,
			ImageURLs:   []string{"https://images.unsplash.com/photo-1555041469-a586c61ea9bc?auto=format&fit=crop&w=800&q=80"},
			SellerID:    "u1",
			SellerEmail: "jane.m@vims.edu",
			CreatedAt:   "2023-10-27T09:15:00Z",
			Condition:   domain.ConditionGood,
		},
		{
			ID:          "4",
			Title:       "Introduction to Physical Oceanography",
			Description: "Textbook by Knauss. Required for PO 101. Slight highlighting on first few chapters.",
			Price:       30.00,
			Category:    domain.CategoryBooks,
			ImageURLs:   []string{"https://images.unsplash.com/photo-1544947950-fa07a98d237f?auto=format&fit=crop&w=800&q=80"},
			SellerID:    "u4",
			SellerEmail: "grad.student@vims.edu",
			CreatedAt:   "2023-10-28T11:20:00Z",
			Condition:   domain.ConditionLikeNew,
		},
		{
			ID:          "5",
			Title:       "Ocean Kayak Malibu Two",
			Description: "Tandem sit-on-top kayak. Comes with two paddles. Great for the York River!",
			Price:       350.00,
			Category:    domain.CategoryOutdoor,
			ImageURLs:   []string{"https://images.unsplash.com/photo-1541544537128-c4c090a93a38?auto=format&fit=crop&w=800&q=80"},
			SellerID:    "u5",
			SellerEmail: "kayak.lover@vims.edu",
			CreatedAt:   "2023-10-28T16:45:00Z",
			Condition:   domain.ConditionFair,
		},
		{
			ID:          "test-item-1",
			Title:       "Vintage VIMS Field Gear",
			Description: "Original field jacket from the 90s. Size Large. Perfect condition. Test item for email functionality.",
			Price:       45.00,
			Category:    domain.CategoryClothing,
			ImageURLs:   []string{"https://images.unsplash.com/photo-1551488852-d81a4d53e253?auto=format&fit=crop&w=800&q=80"},
			SellerID:    "u-test",
			SellerEmail: "jcthomas@vims.edu",
			CreatedAt:   "2023-11-01T09:00:00Z",
			Condition:   domain.ConditionLikeNew,
		},
	}
}
