package ai

import "fmt"

// extractionPrompt asks the model for the exact JSON shape ParseResponse
// expects.
func extractionPrompt(ocrText string) string {
	return fmt.Sprintf(`You are an expert receipt analysis AI. Extract structured data from this receipt.

OCR TEXT:
%s

INSTRUCTIONS:
1. Extract all items with their names, prices, and quantities
2. Identify the merchant/store name
3. Find the total amount
4. Extract date and time if available
5. Identify currency (CDF, USD, etc.)

Return the data in this exact JSON format:
{
    "merchant": "Store Name",
    "date": "YYYY-MM-DD",
    "time": "HH:MM",
    "currency": "CDF",
    "items": [
        {
            "name": "Item name",
            "price": 123.45,
            "quantity": 1
        }
    ],
    "subtotal": 123.45,
    "tax": 12.34,
    "total": 135.79,
    "success": true
}

IMPORTANT:
- Be precise with numbers and item names
- If uncertain about any field, use null or empty values
- Ensure prices are numeric (not strings)
- Return valid JSON only`, ocrText)
}
